// Package input turns localized networks into form models.
//
// A Transformer maps each raw input element to a field variant through a
// name keyed table (number, iban, holderName, verificationCode, bankCode, bic,
// expiryMonth, expiryYear; anything else is Generic). When both expiryMonth
// and expiryYear are present they are merged into one expiryDate field at the
// position of the earlier element. Registration and recurrence requirements
// become checkboxes, and every field carries the validation rule looked up for
// its network.
//
// Verification code placeholders depend on the smart switch state, so the
// resolver is attached after transformation with BindSuffixer.
package input
