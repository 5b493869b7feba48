// Package db opens PostgreSQL connection pools for the command journal.
//
// NewConnector picks a Connector from the journal's auth method:
//
//   - standard: user and password ($PGPASSWORD or the URL)
//   - aws-iam: RDS IAM tokens from the default AWS credential chain
//   - azure-entra: Entra ID tokens, service principal or default credential
//   - google-iam: Cloud SQL connector with IAM authentication
//
// Every connector retries transient failures with internal/retry.
package db
