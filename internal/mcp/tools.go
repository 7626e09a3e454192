package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions. Descriptions aim at an agent picking tools by name and
// blurb, so they lead with what the tool returns.

var importToolDef = mcp.NewTool("table_import",
	mcp.WithDescription("Import a chord table from a CSV file (Thumbs, Fingers, Keyboard Output columns) into the library. Returns the table id and chord count."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Path to the CSV file. Must end in .csv and sit directly in an allowed directory."),
	),
	mcp.WithString("name",
		mcp.Description("Library name for the table. Defaults to the file name without extension."),
	),
	mcp.WithString("mode",
		mcp.Description("Collision behavior when the name already exists: 'error' (default) or 'replace'."),
		mcp.Enum("error", "replace"),
	),
)

var fetchToolDef = mcp.NewTool("table_fetch",
	mcp.WithDescription("Fetch a stored chord table by id or name. Returns metadata and, by default, the chord rows."),
	mcp.WithString("id", mcp.Description("Table ID (ULID).")),
	mcp.WithString("name", mcp.Description("Table name (case-insensitive). Use either id or name, not both.")),
	mcp.WithBoolean("include_deleted", mcp.Description("Allow fetching a soft-deleted table.")),
	mcp.WithBoolean("include_chords", mcp.Description("Include chord rows in the response (default true).")),
)

var listToolDef = mcp.NewTool("table_list",
	mcp.WithDescription("List stored chord tables, most recently updated first."),
	mcp.WithNumber("limit", mcp.Description("Max results per page (default 20, max 100).")),
	mcp.WithNumber("offset", mcp.Description("Pagination offset.")),
	mcp.WithBoolean("include_deleted", mcp.Description("Include soft-deleted tables.")),
)

var deleteToolDef = mcp.NewTool("table_delete",
	mcp.WithDescription("Soft-delete a stored chord table by id or name. Recoverable until purged."),
	mcp.WithString("id", mcp.Description("Table ID (ULID).")),
	mcp.WithString("name", mcp.Description("Table name. Use either id or name, not both.")),
)

var purgeToolDef = mcp.NewTool("table_purge",
	mcp.WithDescription("Permanently remove soft-deleted tables. Irreversible."),
	mcp.WithNumber("older_than_days",
		mcp.Description("Only purge tables deleted more than this many days ago. Omit to purge all deleted tables."),
	),
)

var exportToolDef = mcp.NewTool("table_export",
	mcp.WithDescription("Export a stored chord table back to a CSV file that round-trips through table_import."),
	mcp.WithString("id", mcp.Description("Table ID (ULID).")),
	mcp.WithString("name", mcp.Description("Table name. Use either id or name, not both.")),
	mcp.WithString("path",
		mcp.Description("Destination path ending in .csv. Defaults to a timestamped file in the exports directory."),
	),
)

var sheetToolDef = mcp.NewTool("table_sheet",
	mcp.WithDescription("Render a stored chord table to a printable HTML cheatsheet."),
	mcp.WithString("id", mcp.Description("Table ID (ULID).")),
	mcp.WithString("name", mcp.Description("Table name. Use either id or name, not both.")),
	mcp.WithString("path",
		mcp.Description("Destination path ending in .html. Defaults to a file in the exports directory."),
	),
)

var encodeToolDef = mcp.NewTool("chord_encode",
	mcp.WithDescription("Encode every chord of a table into keystroke events: (modifier byte, HID key code) pairs plus the parsed button mask."),
	mcp.WithString("id", mcp.Description("Table ID (ULID).")),
	mcp.WithString("name", mcp.Description("Table name.")),
	mcp.WithString("path",
		mcp.Description("Encode a CSV file directly without importing it. Exclusive with id and name."),
	),
)

var lintToolDef = mcp.NewTool("chord_lint",
	mcp.WithDescription("Check a table's output strings for problems the encoder silently tolerates: unknown or unterminated tags, stray '>', and literal text with no key code."),
	mcp.WithString("id", mcp.Description("Table ID (ULID).")),
	mcp.WithString("name", mcp.Description("Table name.")),
	mcp.WithString("path",
		mcp.Description("Lint a CSV file directly without importing it. Exclusive with id and name."),
	),
)
