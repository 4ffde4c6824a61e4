// Package sitescout answers natural-language questions about companies by
// locating the most relevant section of a company's public website and
// extracting a structured answer from it. Instead of forwarding whole sites
// to a text-inference service, the pipeline first reasons over section
// *names* (about, pricing, security, ...) to decide where to look, then
// fetches only that section, bounded in size.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, gemini/), and the
// pipeline orchestration lives in research/.
package sitescout
