// Package services implements the driving port interfaces.
//
// ReclaimService is the pre-delete entry point. For a record about to be
// removed it runs each applicable encoding's extractor, resolves the
// candidates to media identifiers, merges usage evidence per medium and
// decides once per medium whether to delete, reparent or keep it.
// SettingsService reads and persists the pipeline configuration.
// HistoryService and ImportService expose the event log and export loading.
package services
