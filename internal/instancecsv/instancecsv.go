// Package instancecsv reads instance.Instance data (items, bins, defects,
// parameters) from the CSV and XLSX formats the CLI accepts, carrying
// forward the teacher's delimiter-detection-and-header-alias style so
// hand-edited spreadsheets with slightly different column names or
// separators still import cleanly.
package instancecsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/instance"
)

// DetectDelimiter tries comma, semicolon, tab and pipe on the first
// non-empty line of data and returns whichever produces the most
// consistent column count across the first few rows.
func DetectDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	text := string(data)
	lines := strings.SplitN(text, "\n", 6)

	best := ','
	bestScore := -1
	for _, d := range candidates {
		score := delimiterScore(lines, d)
		if score > bestScore {
			bestScore = score
			best = d
		}
	}
	return best
}

func delimiterScore(lines []string, d rune) int {
	counts := map[int]int{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		n := strings.Count(line, string(d))
		counts[n]++
	}
	best := 0
	for n, c := range counts {
		if n > 0 && c > best {
			best = c
		}
	}
	return best
}

// headerAliases maps lower-cased, underscore-normalized header aliases to
// the canonical field name a CSV column may represent.
var headerAliases = map[string]string{
	"id": "ID", "name": "ID",
	"width": "WIDTH", "w": "WIDTH",
	"height": "HEIGHT", "h": "HEIGHT",
	"profit": "PROFIT", "value": "PROFIT",
	"cost": "COST",
	"copies": "COPIES", "qty": "COPIES", "quantity": "COPIES",
	"copies_min": "COPIES_MIN", "min_copies": "COPIES_MIN",
	"oriented": "ORIENTED", "no_rotate": "ORIENTED",
	"stack_id": "STACK_ID", "stack": "STACK_ID",
	"bin": "BIN", "bin_id": "BIN",
	"x": "X", "y": "Y",
	"bottom_trim": "BOTTOM_TRIM", "top_trim": "TOP_TRIM",
	"left_trim": "LEFT_TRIM", "right_trim": "RIGHT_TRIM",
	"bottom_trim_type": "BOTTOM_TRIM_TYPE", "top_trim_type": "TOP_TRIM_TYPE",
	"left_trim_type": "LEFT_TRIM_TYPE", "right_trim_type": "RIGHT_TRIM_TYPE",
}

func canonicalHeader(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	if canon, ok := headerAliases[key]; ok {
		return canon
	}
	return strings.ToUpper(key)
}

// columnIndex maps a canonical header name to its column index.
type columnIndex map[string]int

func indexHeader(header []string) columnIndex {
	idx := columnIndex{}
	for i, h := range header {
		idx[canonicalHeader(h)] = i
	}
	return idx
}

func (idx columnIndex) cell(row []string, name string) (string, bool) {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[i]), true
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseLength(s string, def geom.Length) (geom.Length, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("instancecsv: bad length %q: %w", s, err)
	}
	return geom.Length(v), nil
}

func parseInt(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("instancecsv: bad integer %q: %w", s, err)
	}
	return v, nil
}

func parseProfit(s string, def geom.Profit) (geom.Profit, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("instancecsv: bad profit %q: %w", s, err)
	}
	return geom.Profit(v), nil
}

func parseBool(s string, def bool) (bool, error) {
	s = strings.ToLower(s)
	switch s {
	case "":
		return def, nil
	case "true", "1", "yes", "y":
		return true, nil
	case "false", "0", "no", "n":
		return false, nil
	default:
		return false, fmt.Errorf("instancecsv: bad boolean %q", s)
	}
}

func parseTrimType(s string) (geom.TrimKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "h", "hard", "0":
		return geom.HardTrim, nil
	case "s", "soft", "1":
		return geom.SoftTrim, nil
	default:
		return 0, fmt.Errorf("instancecsv: bad trim type %q", s)
	}
}

func readRows(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("instancecsv: read: %w", err)
	}
	cr := csv.NewReader(strings.NewReader(string(data)))
	cr.Comma = DetectDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("instancecsv: parse csv: %w", err)
	}
	return rows, nil
}

// ItemsFromCSV reads item types from a reader in the Items CSV format
// (ID,WIDTH,HEIGHT,PROFIT,COPIES,ORIENTED,STACK_ID).
func ItemsFromCSV(r io.Reader, b *instance.Builder) error {
	rows, err := readRows(r)
	if err != nil {
		return err
	}
	return itemsFromRows(rows, b)
}

func itemsFromRows(rows [][]string, b *instance.Builder) error {
	if len(rows) == 0 {
		return fmt.Errorf("instancecsv: empty items file")
	}
	idx := indexHeader(rows[0])
	if _, ok := idx["WIDTH"]; !ok {
		return fmt.Errorf("instancecsv: items file missing WIDTH column")
	}
	if _, ok := idx["HEIGHT"]; !ok {
		return fmt.Errorf("instancecsv: items file missing HEIGHT column")
	}

	for i, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		wStr, _ := idx.cell(row, "WIDTH")
		hStr, _ := idx.cell(row, "HEIGHT")
		w, err := parseLength(wStr, 0)
		if err != nil {
			return fmt.Errorf("instancecsv: items row %d: %w", i+2, err)
		}
		h, err := parseLength(hStr, 0)
		if err != nil {
			return fmt.Errorf("instancecsv: items row %d: %w", i+2, err)
		}
		if w <= 0 || h <= 0 {
			return fmt.Errorf("instancecsv: items row %d: width and height must be positive", i+2)
		}

		profitStr, _ := idx.cell(row, "PROFIT")
		profit, err := parseProfit(profitStr, geom.Profit(w)*geom.Profit(h))
		if err != nil {
			return fmt.Errorf("instancecsv: items row %d: %w", i+2, err)
		}

		copiesStr, _ := idx.cell(row, "COPIES")
		copies, err := parseInt(copiesStr, 1)
		if err != nil {
			return fmt.Errorf("instancecsv: items row %d: %w", i+2, err)
		}

		orientedStr, _ := idx.cell(row, "ORIENTED")
		oriented, err := parseBool(orientedStr, false)
		if err != nil {
			return fmt.Errorf("instancecsv: items row %d: %w", i+2, err)
		}

		stackStr, _ := idx.cell(row, "STACK_ID")
		stackN, err := parseInt(stackStr, int(instance.NoStack))
		if err != nil {
			return fmt.Errorf("instancecsv: items row %d: %w", i+2, err)
		}

		label, _ := idx.cell(row, "ID")
		if label == "" {
			label = newID()
		}

		b.AddItemType(instance.ItemType{
			Label:    label,
			Rect:     geom.Rectangle{Width: w, Height: h},
			Profit:   profit,
			Copies:   copies,
			Oriented: oriented,
			StackID:  instance.StackID(stackN),
		})
	}
	return nil
}

// BinsFromCSV reads bin types from a reader in the Bins CSV format.
func BinsFromCSV(r io.Reader, b *instance.Builder) ([]instance.BinTypeID, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	return binsFromRows(rows, b)
}

func binsFromRows(rows [][]string, b *instance.Builder) ([]instance.BinTypeID, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("instancecsv: empty bins file")
	}
	idx := indexHeader(rows[0])
	if _, ok := idx["WIDTH"]; !ok {
		return nil, fmt.Errorf("instancecsv: bins file missing WIDTH column")
	}
	if _, ok := idx["HEIGHT"]; !ok {
		return nil, fmt.Errorf("instancecsv: bins file missing HEIGHT column")
	}

	var ids []instance.BinTypeID
	for i, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		wStr, _ := idx.cell(row, "WIDTH")
		hStr, _ := idx.cell(row, "HEIGHT")
		w, err := parseLength(wStr, 0)
		if err != nil {
			return nil, fmt.Errorf("instancecsv: bins row %d: %w", i+2, err)
		}
		h, err := parseLength(hStr, 0)
		if err != nil {
			return nil, fmt.Errorf("instancecsv: bins row %d: %w", i+2, err)
		}
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("instancecsv: bins row %d: width and height must be positive", i+2)
		}

		costStr, _ := idx.cell(row, "COST")
		cost, err := parseProfit(costStr, geom.Profit(w)*geom.Profit(h))
		if err != nil {
			return nil, fmt.Errorf("instancecsv: bins row %d: %w", i+2, err)
		}
		copiesStr, _ := idx.cell(row, "COPIES")
		copies, err := parseInt(copiesStr, instance.Unlimited)
		if err != nil {
			return nil, fmt.Errorf("instancecsv: bins row %d: %w", i+2, err)
		}
		copiesMinStr, _ := idx.cell(row, "COPIES_MIN")
		copiesMin, err := parseInt(copiesMinStr, 0)
		if err != nil {
			return nil, fmt.Errorf("instancecsv: bins row %d: %w", i+2, err)
		}
		if copies != instance.Unlimited && copiesMin > copies {
			return nil, fmt.Errorf("instancecsv: bins row %d: copies_min > copies", i+2)
		}

		label, _ := idx.cell(row, "ID")
		if label == "" {
			label = newID()
		}

		bt := instance.BinType{
			Label:     label,
			Rect:      geom.Rectangle{Width: w, Height: h},
			Cost:      cost,
			Copies:    copies,
			CopiesMin: copiesMin,
		}
		bt.Trims, err = trimsFromRow(idx, row)
		if err != nil {
			return nil, fmt.Errorf("instancecsv: bins row %d: %w", i+2, err)
		}

		ids = append(ids, b.AddBinType(bt))
	}
	return ids, nil
}

func trimsFromRow(idx columnIndex, row []string) ([4]geom.Trim, error) {
	var trims [4]geom.Trim
	edges := []struct {
		edge     geom.Edge
		len, typ string
	}{
		{geom.Bottom, "BOTTOM_TRIM", "BOTTOM_TRIM_TYPE"},
		{geom.Top, "TOP_TRIM", "TOP_TRIM_TYPE"},
		{geom.Left, "LEFT_TRIM", "LEFT_TRIM_TYPE"},
		{geom.Right, "RIGHT_TRIM", "RIGHT_TRIM_TYPE"},
	}
	for _, e := range edges {
		lenStr, _ := idx.cell(row, e.len)
		l, err := parseLength(lenStr, 0)
		if err != nil {
			return trims, err
		}
		typStr, _ := idx.cell(row, e.typ)
		kind, err := parseTrimType(typStr)
		if err != nil {
			return trims, err
		}
		trims[e.edge] = geom.Trim{Length: l, Kind: kind}
	}
	return trims, nil
}

// DefectsFromCSV reads defects from a reader in the Defects CSV format
// (ID,BIN,X,Y,WIDTH,HEIGHT), attaching each to the bin type at the given
// position in binIDs (the order BinsFromCSV returned them in).
func DefectsFromCSV(r io.Reader, b *instance.Builder, binIDs []instance.BinTypeID) error {
	rows, err := readRows(r)
	if err != nil {
		return err
	}
	return defectsFromRows(rows, b, binIDs)
}

func defectsFromRows(rows [][]string, b *instance.Builder, binIDs []instance.BinTypeID) error {
	if len(rows) == 0 {
		return nil
	}
	idx := indexHeader(rows[0])
	for i, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		binStr, _ := idx.cell(row, "BIN")
		binN, err := parseInt(binStr, 0)
		if err != nil {
			return fmt.Errorf("instancecsv: defects row %d: %w", i+2, err)
		}
		if binN < 0 || binN >= len(binIDs) {
			return fmt.Errorf("instancecsv: defects row %d: unknown bin %d", i+2, binN)
		}

		xStr, _ := idx.cell(row, "X")
		yStr, _ := idx.cell(row, "Y")
		wStr, _ := idx.cell(row, "WIDTH")
		hStr, _ := idx.cell(row, "HEIGHT")
		x, err := parseLength(xStr, 0)
		if err != nil {
			return fmt.Errorf("instancecsv: defects row %d: %w", i+2, err)
		}
		y, err := parseLength(yStr, 0)
		if err != nil {
			return fmt.Errorf("instancecsv: defects row %d: %w", i+2, err)
		}
		w, err := parseLength(wStr, 0)
		if err != nil {
			return fmt.Errorf("instancecsv: defects row %d: %w", i+2, err)
		}
		h, err := parseLength(hStr, 0)
		if err != nil {
			return fmt.Errorf("instancecsv: defects row %d: %w", i+2, err)
		}

		label, _ := idx.cell(row, "ID")
		if label == "" {
			label = newID()
		}

		if _, err := b.AddDefect(binIDs[binN], instance.Defect{
			Label: label,
			Pos:   geom.Coord{X: x, Y: y},
			Rect:  geom.Rectangle{Width: w, Height: h},
		}); err != nil {
			return fmt.Errorf("instancecsv: defects row %d: %w", i+2, err)
		}
	}
	return nil
}

// ParametersFromCSV reads the two-column NAME,VALUE parameters format and
// applies recognized names onto a copy of base.
func ParametersFromCSV(r io.Reader, base instance.Parameters) (instance.Parameters, error) {
	rows, err := readRows(r)
	if err != nil {
		return base, err
	}
	return parametersFromRows(rows, base)
}

func parametersFromRows(rows [][]string, base instance.Parameters) (instance.Parameters, error) {
	params := base
	start := 0
	if len(rows) > 0 && strings.EqualFold(strings.TrimSpace(firstOrEmpty(rows[0])), "name") {
		start = 1
	}
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) || len(row) < 2 {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(row[0]))
		value := strings.TrimSpace(row[1])
		if err := applyParameter(&params, name, value); err != nil {
			return base, fmt.Errorf("instancecsv: parameters row %d: %w", i+1, err)
		}
	}
	return params, nil
}

func firstOrEmpty(row []string) string {
	if len(row) == 0 {
		return ""
	}
	return row[0]
}

func applyParameter(p *instance.Parameters, name, value string) error {
	switch name {
	case "objective":
		obj, err := parseObjective(value)
		if err != nil {
			return err
		}
		p.Objective = obj
	case "cut_type":
		ct, err := parseCutType(value)
		if err != nil {
			return err
		}
		p.CutType = ct
	case "first_stage_orientation":
		o, err := parseOrientation(value)
		if err != nil {
			return err
		}
		p.FirstStageOrientation = o
	case "number_of_stages":
		n, err := parseInt(value, p.NumberOfStages)
		if err != nil {
			return err
		}
		p.NumberOfStages = n
	case "minimum_waste_length":
		l, err := parseLength(value, p.MinimumWaste)
		if err != nil {
			return err
		}
		p.MinimumWaste = l
	case "cut_thickness":
		l, err := parseLength(value, p.CutThickness)
		if err != nil {
			return err
		}
		p.CutThickness = l
	case "minimum_distance_1_cuts":
		l, err := parseLength(value, p.MinimumDistance1Cuts)
		if err != nil {
			return err
		}
		p.MinimumDistance1Cuts = l
	case "maximum_distance_1_cuts":
		l, err := parseLength(value, p.MaximumDistance1Cuts)
		if err != nil {
			return err
		}
		p.MaximumDistance1Cuts = l
	case "minimum_distance_2_cuts":
		l, err := parseLength(value, p.MinimumDistance2Cuts)
		if err != nil {
			return err
		}
		p.MinimumDistance2Cuts = l
	case "maximum_number_2_cuts":
		n, err := parseInt(value, p.MaximumNumberOf2Cuts)
		if err != nil {
			return err
		}
		p.MaximumNumberOf2Cuts = n
	case "cut_through_defects":
		b, err := parseBool(value, p.CutThroughDefects)
		if err != nil {
			return err
		}
		p.CutThroughDefects = b
	default:
		return fmt.Errorf("unrecognized parameter %q", name)
	}
	return nil
}

func parseObjective(s string) (instance.Objective, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", "_")) {
	case "default", "":
		return instance.Default, nil
	case "bin_packing", "binpacking":
		return instance.BinPacking, nil
	case "bin_packing_with_leftovers":
		return instance.BinPackingWithLeftovers, nil
	case "open_dimension_x":
		return instance.OpenDimensionX, nil
	case "open_dimension_y":
		return instance.OpenDimensionY, nil
	case "knapsack":
		return instance.Knapsack, nil
	case "variable_sized_bin_packing":
		return instance.VariableSizedBinPacking, nil
	case "sequential_one_dimensional_sub":
		return instance.SequentialOneDimensionalSub, nil
	default:
		return 0, fmt.Errorf("unrecognized objective %q", s)
	}
}

func parseCutType(s string) (instance.CutType, error) {
	switch strings.ToLower(s) {
	case "roadef2018", "r", "":
		return instance.Roadef2018, nil
	case "non_exact", "nonexact", "n":
		return instance.NonExact, nil
	case "exact", "e":
		return instance.Exact, nil
	case "homogenous", "homogeneous", "h":
		return instance.Homogenous, nil
	default:
		return 0, fmt.Errorf("unrecognized cut_type %q", s)
	}
}

func parseOrientation(s string) (geom.CutOrientation, error) {
	switch strings.ToLower(s) {
	case "v", "vertical":
		return geom.Vertical, nil
	case "h", "horizontal":
		return geom.Horizontal, nil
	case "a", "any", "":
		return geom.Any, nil
	default:
		return 0, fmt.Errorf("unrecognized first_stage_orientation %q", s)
	}
}

// LoadFiles builds a complete Instance from the CSV file paths the CLI
// accepts: items and bins are required, defects and parameters are
// optional (nil/"" to skip).
func LoadFiles(itemsPath, binsPath, defectsPath, parametersPath string) (*instance.Instance, error) {
	params := instance.DefaultParameters()
	if parametersPath != "" {
		f, err := os.Open(parametersPath)
		if err != nil {
			return nil, fmt.Errorf("instancecsv: open parameters file: %w", err)
		}
		defer f.Close()
		params, err = ParametersFromCSV(f, params)
		if err != nil {
			return nil, err
		}
	}
	return LoadFilesWithParams(itemsPath, binsPath, defectsPath, params)
}

// LoadFilesWithParams is LoadFiles for a caller that has already resolved
// Parameters itself (the CLI layers parameters CSV, env, predefined
// shorthand and per-flag overrides through internal/config before
// loading the instance, so it must not let this function re-derive them
// from parametersPath alone).
func LoadFilesWithParams(itemsPath, binsPath, defectsPath string, params instance.Parameters) (*instance.Instance, error) {
	b := instance.NewBuilder(params)

	itemsF, err := os.Open(itemsPath)
	if err != nil {
		return nil, fmt.Errorf("instancecsv: open items file: %w", err)
	}
	defer itemsF.Close()
	if err := ItemsFromCSV(itemsF, b); err != nil {
		return nil, err
	}

	binsF, err := os.Open(binsPath)
	if err != nil {
		return nil, fmt.Errorf("instancecsv: open bins file: %w", err)
	}
	defer binsF.Close()
	binIDs, err := BinsFromCSV(binsF, b)
	if err != nil {
		return nil, err
	}

	if defectsPath != "" {
		defectsF, err := os.Open(defectsPath)
		if err != nil {
			return nil, fmt.Errorf("instancecsv: open defects file: %w", err)
		}
		defer defectsF.Close()
		if err := DefectsFromCSV(defectsF, b, binIDs); err != nil {
			return nil, err
		}
	}

	return b.Build()
}

// LoadXLSX builds a complete Instance from a single workbook with
// "Items", "Bins", "Defects" and "Parameters" sheets (the latter two
// optional), the xlsx analogue of LoadFiles for shops that keep their
// cut lists in a spreadsheet instead of separate CSVs.
func LoadXLSX(path string) (*instance.Instance, error) {
	return LoadXLSXWithParams(path, instance.DefaultParameters())
}

// LoadXLSXWithParams is LoadXLSX for a caller supplying already-resolved
// Parameters; the workbook's own Parameters sheet, if present, still
// applies on top of params.
func LoadXLSXWithParams(path string, params instance.Parameters) (*instance.Instance, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("instancecsv: open workbook: %w", err)
	}
	defer f.Close()

	if rows, err := f.GetRows("Parameters"); err == nil && len(rows) > 0 {
		params, err = parametersFromRows(rows, params)
		if err != nil {
			return nil, err
		}
	}

	b := instance.NewBuilder(params)

	itemRows, err := f.GetRows("Items")
	if err != nil {
		return nil, fmt.Errorf("instancecsv: read Items sheet: %w", err)
	}
	if err := itemsFromRows(itemRows, b); err != nil {
		return nil, err
	}

	binRows, err := f.GetRows("Bins")
	if err != nil {
		return nil, fmt.Errorf("instancecsv: read Bins sheet: %w", err)
	}
	binIDs, err := binsFromRows(binRows, b)
	if err != nil {
		return nil, err
	}

	if defectRows, err := f.GetRows("Defects"); err == nil && len(defectRows) > 0 {
		if err := defectsFromRows(defectRows, b, binIDs); err != nil {
			return nil, err
		}
	}

	return b.Build()
}

// newID stamps a short id for a row that omitted one, the way the
// teacher's model types stamp uuid-derived ids for entities a CSV import
// leaves unnamed.
func newID() string {
	return uuid.New().String()[:8]
}

// ReadParameterPairs reads a two-column NAME,VALUE parameters CSV from
// path and returns it as a plain map, for callers (internal/config) that
// merge it into a layered configuration source rather than applying it
// directly to an instance.Parameters.
func ReadParameterPairs(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("instancecsv: open parameters file: %w", err)
	}
	defer f.Close()

	rows, err := readRows(f)
	if err != nil {
		return nil, err
	}
	pairs := map[string]string{}
	start := 0
	if len(rows) > 0 && strings.EqualFold(strings.TrimSpace(firstOrEmpty(rows[0])), "name") {
		start = 1
	}
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) || len(row) < 2 {
			continue
		}
		pairs[strings.ToLower(strings.TrimSpace(row[0]))] = strings.TrimSpace(row[1])
	}
	return pairs, nil
}

// ParseObjectiveName exposes parseObjective for callers outside the
// package (internal/config layering parameters from multiple sources).
func ParseObjectiveName(s string) (instance.Objective, bool) {
	obj, err := parseObjective(s)
	return obj, err == nil
}

// ParseCutTypeName exposes parseCutType for callers outside the package.
func ParseCutTypeName(s string) (instance.CutType, bool) {
	ct, err := parseCutType(s)
	return ct, err == nil
}

// ParseOrientationName exposes parseOrientation for callers outside the
// package.
func ParseOrientationName(s string) (geom.CutOrientation, bool) {
	o, err := parseOrientation(s)
	return o, err == nil
}
