// Package provider defines the dataset provider contract and the registry
// of named providers, plus the built-in providers for a set of published
// species-trait datasets.
//
// A provider is a zero-argument unit (beyond its context) that downloads
// one third-party dataset and normalizes it into the canonical long-format
// result. Providers are registered under lowercase identifiers and are
// invoked by the collector; each provider's failure is isolated from the
// others.
package provider
