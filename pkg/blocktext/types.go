package blocktext

// Kind is the block type as reported by the source document.
type Kind string

const (
	KindParagraph        Kind = "paragraph"
	KindHeading1         Kind = "heading_1"
	KindHeading2         Kind = "heading_2"
	KindHeading3         Kind = "heading_3"
	KindToDo             Kind = "to_do"
	KindBulletedListItem Kind = "bulleted_list_item"
	KindNumberedListItem Kind = "numbered_list_item"
	KindToggle           Kind = "toggle"
	KindQuote            Kind = "quote"
	KindCallout          Kind = "callout"
	KindSyncedBlock      Kind = "synced_block"
	KindTemplate         Kind = "template"
	KindColumn           Kind = "column"
	KindChildPage        Kind = "child_page"
	KindChildDatabase    Kind = "child_database"
	KindTable            Kind = "table"
)

// Block is one content unit of a document, reduced to its plain text runs.
type Block struct {
	Kind    Kind
	Runs    []string
	Checked bool // to_do only
}
