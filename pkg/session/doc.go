// Package session loads a payment session.
//
// Loader.Load runs six stages in order: fetch the list result, download the
// shared localization, check the interaction code, drop unsupported networks,
// localize every network and account, and assemble the Session. Only the
// localization stage fans out; it waits for every download and the first
// failure cancels the rest. Any stage failure aborts the load with a single
// error classified by the failure package.
package session
