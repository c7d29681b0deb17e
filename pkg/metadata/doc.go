// Package metadata defines the NFT metadata document: the Metadata,
// Attribute, Properties and AssetFile records, their builders, a
// mode-aware JSON and YAML codec, and a JSON Schema export.
//
// Records use pointer fields and nil slices for "not set". The policy
// Mode decides which fields a document must carry: the codec fails with
// a *MissingFieldError when a required field is absent, and the schema
// export marks the same fields as required. Both read the same field
// table, see Records.
//
// The package performs no I/O and never logs; errors are returned to the
// caller.
package metadata
