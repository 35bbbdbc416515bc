package mcpserver

// TaskFormatContract describes the canonical task line format that
// LLM consumers should follow when reading or producing task lines.
const TaskFormatContract = `# Ordo Task Document Contract

The task list is one plain-text document. Every task is a single line.

## Line format

` + "```" + `
- [ ] Title text +project @context due:YYYY-MM-DD [[reference]] ^marker
` + "```" + `

## Rules

1. **Checkbox prefix is mandatory.** ` + "`- [ ]`" + ` is open, ` + "`- [x]`" + ` or
   ` + "`- [X]`" + ` is done. Any line without one of these prefixes is not a task.
2. **Metadata tokens are optional and order-independent.** Only the first
   occurrence of each token kind counts.
3. ` + "`+project`" + ` and ` + "`@context`" + ` are single whitespace-free tokens.
4. ` + "`due:`" + ` takes an ISO date (YYYY-MM-DD). Anything else is ignored.
5. ` + "`[[reference]]`" + ` cross-references another document.
6. ` + "`^marker`" + ` is a stable alphanumeric identifier. Never invent,
   change, or remove one; edits carry it over untouched.
7. **Sections** are level-3 headers (` + "`### Name`" + `); a task belongs to the
   nearest header above it.
8. A line whose trimmed text is exactly ` + "`---`" + ` separates the active list
   from the archive; new tasks are inserted immediately before it.
`
