// Package localization provides the translation snapshots used by the checkout
// flow. Bundles are immutable once built; a network bundle is the shared
// bundle with the network specific strings merged on top. Server strings are
// stripped of markup with bluemonday before they are stored.
package localization
