// Package relief drives the relief_center_management Move module: creating
// the management resource, registering relief centers, donating to a
// center, and reading account balances.
//
// Payload builders are pure and address a fixed module. The Client signs
// and submits those payloads through an explicitly supplied Ledger, which
// is normally a *supra.Client. Failures come back as typed errors that can
// be told apart with errors.Is and errors.As:
//
//   - *InvalidCredentialError (ErrInvalidCredential)
//   - *SubmissionError (ErrSubmission)
//   - *AccountNotFoundError (ErrAccountNotFound)
//   - *QueryError (ErrQuery)
//
// Nothing is retried and nothing is recorded locally.
package relief
