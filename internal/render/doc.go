// Package render converts decoded Todoist API values into tool output.
//
// Two strategies exist: JSON mode serializes the value verbatim with 2-space
// indentation, and markdown mode builds a hand-formatted summary per
// operation. Markdown list output is capped at CharacterLimit characters;
// exceeding responses are cut and annotated with the original item count.
package render
