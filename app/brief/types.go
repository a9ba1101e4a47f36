package brief

type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
)

// ContentBlock is one heading or paragraph of a converted briefing, in
// source order.
type ContentBlock struct {
	Kind BlockKind
	Text string
}
