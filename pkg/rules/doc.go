// Package rules loads the static rule tables bundled with the SDK: card brand
// grouping rules and smart switch rules. Tables are parsed once with yaml.v3
// (JSON is accepted too) and shared read-only for the life of the process.
package rules
