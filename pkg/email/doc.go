// Package email delivers rendered preview emails. The production sender is
// backed by Postmark; DevSender writes messages to disk for local work where
// no Postmark account is configured.
package email
