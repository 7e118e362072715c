// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reference loads the company and product documents embedded in prompts.
//
// Both documents have a fixed schema and are validated when loaded; a document
// with an unexpected shape fails with a *SchemaError rather than producing a
// prompt with missing facts. Until the first load finishes the Store holds no
// data, which callers treat as "still loading", not as an error.
//
// # Key Types
//
//   - Data: Company facts plus product catalog
//   - Loader: Anything that can produce Data (FileLoader reads JSON or YAML)
//   - Store: Concurrency-safe holder, nil until loaded
//   - Watcher: Reloads the documents when they change on disk
//
// # Usage
//
//	store := reference.NewStore(logger)
//	store.LoadAsync(ctx, reference.FileLoader{
//	    CompanyPath: "Data.json",
//	    CatalogPath: "ProductData.json",
//	})
//	if data := store.Get(); data != nil {
//	    fmt.Println(data.Company.Name)
//	}
package reference
