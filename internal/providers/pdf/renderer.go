package pdf

import (
	"context"
	"errors"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"go.uber.org/fx"
)

var Module = fx.Module("pdf.provider",
	fx.Provide(New),
)

type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
}

type MarotoRenderer struct{}

func New() Renderer {
	return &MarotoRenderer{}
}

var (
	small = props.Text{Size: 8}
	label = props.Text{Size: 8, Style: fontstyle.Bold}
	head  = props.Text{Size: 9, Style: fontstyle.Bold}
	right = props.Text{Size: 9, Align: align.Right}
)

func (r *MarotoRenderer) Render(ctx context.Context, doc Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc.Title == "" {
		return nil, errors.New("pdf document title is required")
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()
	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, doc.Title, props.Text{Size: 18, Style: fontstyle.Bold}),
		col.New(4).Add(
			text.New("No: "+doc.Number, props.Text{Size: 9, Align: align.Right}),
			text.New("Date: "+doc.Date, props.Text{Size: 9, Align: align.Right, Top: 5}),
		),
	)

	for _, section := range doc.Sections {
		addSection(m, section)
	}

	m.AddRow(8,
		text.NewCol(1, "#", head),
		text.NewCol(5, "Description", head),
		text.NewCol(2, "Qty", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Price", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)
	for i, line := range doc.Lines {
		qty := line.Quantity
		if line.Unit != "" && qty != "" {
			qty += " " + line.Unit
		}
		m.AddRow(7,
			text.NewCol(1, strconv.Itoa(i+1), props.Text{Size: 9}),
			text.NewCol(5, line.Description, props.Text{Size: 9}),
			text.NewCol(2, qty, right),
			text.NewCol(2, line.Price, right),
			text.NewCol(2, line.Amount, right),
		)
	}
	if doc.Total != "" {
		m.AddRow(9,
			col.New(8),
			text.NewCol(2, "Total", head),
			text.NewCol(2, doc.Total, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		)
	}

	for _, note := range doc.Notes {
		if note.Value == "" {
			continue
		}
		m.AddRow(10,
			col.New(12).Add(
				text.New(note.Label, label),
				text.New(note.Value, props.Text{Size: 8, Top: 4}),
			),
		)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return out.GetBytes(), nil
}

// addSection prints fields two per row under a bold heading.
func addSection(m core.Maroto, section Section) {
	fields := section.Visible()
	if len(fields) == 0 {
		return
	}
	m.AddRow(8, text.NewCol(12, section.Title, props.Text{Size: 10, Style: fontstyle.Bold, Top: 2}))
	for i := 0; i < len(fields); i += 2 {
		cols := []core.Col{
			text.NewCol(2, fields[i].Label, label),
			text.NewCol(4, fields[i].Value, small),
		}
		if i+1 < len(fields) {
			cols = append(cols,
				text.NewCol(2, fields[i+1].Label, label),
				text.NewCol(4, fields[i+1].Value, small),
			)
		}
		m.AddRow(5, cols...)
	}
}
