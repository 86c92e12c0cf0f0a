// Package extractors groups the format-specific media reference extractors.
//
// Each sub-package implements driven.Extractor for one content encoding:
//
//   - attached:  media directly owned by the record (standard)
//   - nested:    numeric id / media_id keys in a nested JSON tree (Elementor)
//   - shortcode: shortcode ids, data attributes and upload URLs in the body (Thrive)
//   - tagged:    correlation tags and upload URLs in a JSON or serialized payload (Brizy)
//   - plainurl:  upload URLs in the body (Divi)
//
// Extractors never mutate the record or the store, and re-running one on the
// same input yields the same candidate set.
package extractors
