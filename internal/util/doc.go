// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the chatbot packages.
//
// # Key Functions
//
//   - TruncateRunes: UTF-8 safe truncation with ellipsis, used for log fields
//   - DisplayWidth: Terminal column width of a string
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	logger.Info("submit", zap.String("message", util.TruncateRunes(msg, 80)))
//	err := util.AtomicWriteFile(path, data, 0600)
package util
