package solution

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/piwi3910/guillocut/internal/branching"
	"github.com/piwi3910/guillocut/internal/instance"
)

// Certificate row TYPE values for non-item rows.
const (
	TypeWaste    = -1
	TypeResidual = -2
	TypeSubplate = -3
	TypeDefect   = -4
)

var certificateHeader = []string{
	"PLATE_ID", "COPIES", "NODE_ID", "X", "Y", "WIDTH", "HEIGHT", "TYPE", "CUT", "PARENT",
}

// WriteCertificateCSV writes one row per tree node on node's parent chain
// (one row per item it placed, or a waste row if it placed none) plus one
// row per defect of every bin type used, in the PLATE_ID,COPIES,NODE_ID,
// X,Y,WIDTH,HEIGHT,TYPE,CUT,PARENT format.
func WriteCertificateCSV(w io.Writer, inst *instance.Instance, leaf *branching.Node) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(certificateHeader); err != nil {
		return fmt.Errorf("solution: write certificate header: %w", err)
	}

	chain := nodeChain(leaf)
	usedBins := map[int]instance.BinTypeID{}

	for _, n := range chain {
		if n.IsRoot() {
			continue
		}
		parentID := int64(-1)
		if n.Parent != nil {
			parentID = n.Parent.ID
		}
		usedBins[n.BinIndex] = n.BinTypeIDs[n.BinIndex]

		rows := nodeRows(n)
		for _, row := range rows {
			if err := cw.Write(certificateRow(n.BinIndex, 1, n.ID, row.x, row.y, row.w, row.h, row.typ, n.DF, parentID)); err != nil {
				return fmt.Errorf("solution: write certificate row: %w", err)
			}
		}
	}

	var binIndices []int
	for idx := range usedBins {
		binIndices = append(binIndices, idx)
	}
	for _, idx := range binIndices {
		bt := inst.BinType(usedBins[idx])
		for _, d := range bt.Defects {
			if err := cw.Write(certificateRow(idx, 1, -1, d.Pos.X, d.Pos.Y, d.Rect.Width, d.Rect.Height, TypeDefect, 0, -1)); err != nil {
				return fmt.Errorf("solution: write certificate defect row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

type certRow struct {
	x, y, w, h int64
	typ        int
}

func nodeRows(n *branching.Node) []certRow {
	var rows []certRow
	if n.Placement1 != nil {
		rows = append(rows, placementRow(*n.Placement1))
	}
	if n.Placement2 != nil {
		rows = append(rows, placementRow(*n.Placement2))
	}
	if len(rows) == 0 {
		rows = append(rows, certRow{
			x: int64(n.X1Prev), y: int64(n.Y2Prev),
			w: int64(n.X1Curr - n.X1Prev), h: int64(n.Y2Curr - n.Y2Prev),
			typ: TypeWaste,
		})
	}
	return rows
}

func placementRow(p branching.Placement) certRow {
	return certRow{
		x: int64(p.Pos.X), y: int64(p.Pos.Y),
		w: int64(p.Rect.Width), h: int64(p.Rect.Height),
		typ: int(p.ItemTypeID),
	}
}

func certificateRow(plateID, copies int, nodeID int64, x, y, w, h int64, typ, cut int, parent int64) []string {
	return []string{
		strconv.Itoa(plateID),
		strconv.Itoa(copies),
		strconv.FormatInt(nodeID, 10),
		strconv.FormatInt(x, 10),
		strconv.FormatInt(y, 10),
		strconv.FormatInt(w, 10),
		strconv.FormatInt(h, 10),
		strconv.Itoa(typ),
		strconv.Itoa(cut),
		strconv.FormatInt(parent, 10),
	}
}

// nodeChain returns leaf and every ancestor, root first.
func nodeChain(leaf *branching.Node) []*branching.Node {
	var rev []*branching.Node
	for n := leaf; n != nil; n = n.Parent {
		rev = append(rev, n)
	}
	out := make([]*branching.Node, len(rev))
	for i, n := range rev {
		out[len(rev)-1-i] = n
	}
	return out
}
