// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. A .env file in the working directory, if present
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
//
// Defaults are applied to the merged result before validation. The main
// entry point is [GetStructuredConfig].
package config
