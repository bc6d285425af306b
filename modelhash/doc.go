// Package modelhash computes and caches content hashes of OCR model files.
//
// The resulting [Manifest] maps each model filename to a lowercase hex digest
// and is stamped onto every OCR sidecar so results can be traced back to the
// exact models that produced them.
//
// # Cache Policy
//
// The manifest is persisted as model_hashes.json beside the model files. When
// that file exists the manifest is decoded from it and trusted as-is: the
// models are never rescanned, even if they have changed since. The cache must
// be a JSON object of string values. Delete the cache file to force a rescan.
//
// # Usage
//
//	dir, err := modelhash.DefaultDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p := modelhash.NewProvider(dir)
//	manifest, err := p.Manifest() // computed once, then memoized
//
// # Algorithms
//
// MD5 is the default and matches caches written by earlier tooling. SHA256
// and BLAKE2b are available for new caches:
//
//	p := modelhash.NewProvider(dir, modelhash.WithAlgorithm(modelhash.SHA256))
package modelhash
