// Package template resolves {{name}} placeholders in message text
// against session variables.
//
// Missing variables are kept verbatim rather than erroring: a flow author
// referencing an unset variable sees the raw placeholder in the outbound
// message, which is easier to diagnose than silent empty text.
package template
