// Package cli wires configuration, logging and services into the two
// one-shot commands: Insert (bulk item creation) and Upload (signed-URL
// file upload). Each writes a JSON summary of its outcome to the app's
// output and returns the first fatal error.
package cli
