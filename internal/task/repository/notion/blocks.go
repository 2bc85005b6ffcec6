package notion

import (
	"github.com/jomei/notionapi"

	"github.com/gelugu/judah-bot/pkg/blocktext"
)

// toBlock reduces a Notion block to its kind and plain text runs.
// Container kinds without text of their own (synced block, column, table)
// keep their kind and carry no runs.
func toBlock(b notionapi.Block) blocktext.Block {
	switch v := b.(type) {
	case *notionapi.ParagraphBlock:
		return textBlock(blocktext.KindParagraph, v.Paragraph.RichText)
	case *notionapi.Heading1Block:
		return textBlock(blocktext.KindHeading1, v.Heading1.RichText)
	case *notionapi.Heading2Block:
		return textBlock(blocktext.KindHeading2, v.Heading2.RichText)
	case *notionapi.Heading3Block:
		return textBlock(blocktext.KindHeading3, v.Heading3.RichText)
	case *notionapi.ToDoBlock:
		blk := textBlock(blocktext.KindToDo, v.ToDo.RichText)
		blk.Checked = v.ToDo.Checked
		return blk
	case *notionapi.BulletedListItemBlock:
		return textBlock(blocktext.KindBulletedListItem, v.BulletedListItem.RichText)
	case *notionapi.NumberedListItemBlock:
		return textBlock(blocktext.KindNumberedListItem, v.NumberedListItem.RichText)
	case *notionapi.ToggleBlock:
		return textBlock(blocktext.KindToggle, v.Toggle.RichText)
	case *notionapi.QuoteBlock:
		return textBlock(blocktext.KindQuote, v.Quote.RichText)
	case *notionapi.CalloutBlock:
		return textBlock(blocktext.KindCallout, v.Callout.RichText)
	case *notionapi.TemplateBlock:
		return textBlock(blocktext.KindTemplate, v.Template.RichText)
	case *notionapi.ChildPageBlock:
		return blocktext.Block{Kind: blocktext.KindChildPage, Runs: []string{v.ChildPage.Title}}
	case *notionapi.ChildDatabaseBlock:
		return blocktext.Block{Kind: blocktext.KindChildDatabase, Runs: []string{v.ChildDatabase.Title}}
	case *notionapi.SyncedBlock:
		return blocktext.Block{Kind: blocktext.KindSyncedBlock}
	case *notionapi.ColumnBlock:
		return blocktext.Block{Kind: blocktext.KindColumn}
	case *notionapi.TableBlock:
		return blocktext.Block{Kind: blocktext.KindTable}
	case nil:
		return blocktext.Block{}
	default:
		return blocktext.Block{Kind: blocktext.Kind(b.GetType())}
	}
}

func textBlock(kind blocktext.Kind, rich []notionapi.RichText) blocktext.Block {
	runs := make([]string, 0, len(rich))
	for _, rt := range rich {
		runs = append(runs, rt.PlainText)
	}
	return blocktext.Block{Kind: kind, Runs: runs}
}
