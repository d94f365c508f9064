// Package infra contains technical adapters such as file ingestion,
// workbook reporting and outcome store backends. These packages should
// depend only on the interfaces defined in the core packages.
package infra
