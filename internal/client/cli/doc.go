// Package cli provides the interactive learnkit command-line client.
//
// It wires configuration, the API client, the local progress cache and the
// course and wallet services, then either runs a single command given on
// the command line or starts a REPL. Results are printed as indented JSON.
//
// Key features:
//   - Maps, courses and step completion (quiz answers, transaction hashes)
//   - Progress with a local fallback while the backend is unreachable
//   - Wallet linking and NFT minting, with the user acting as the signer
//   - Credential state and HTTP counters for troubleshooting
//
// See App, runREPL and dispatch for details.
package cli
