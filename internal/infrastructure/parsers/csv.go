package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Row types in a CSV tree file.
const (
	rowPerson      = "person"
	rowParentChild = "parent_child"
	rowSpouse      = "spouse"
)

// CSVParser parses family trees from CSV format. Each row is either a
// person or an edge, told apart by the type column.
//
// Columns: type, id, name, gender, birth_date, death_date, birth_order,
// alive, notes, person, related
type CSVParser struct{}

// Parse reads CSV from the reader and returns the parsed tree.
func (p *CSVParser) Parse(r io.Reader) (*TreeFile, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}

	if _, ok := colIndex["type"]; !ok {
		return nil, fmt.Errorf("missing required column: type")
	}

	return colIndex, nil
}

// readRecords reads all data rows and sorts them into people and edges.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) (*TreeFile, error) {
	tree := &TreeFile{}
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		rowType := strings.ToLower(getColumn(record, colIndex, "type"))
		switch rowType {
		case rowPerson:
			person, err := p.parsePerson(record, colIndex, lineNum)
			if err != nil {
				return nil, err
			}
			tree.People = append(tree.People, person)
		case rowParentChild, "parent", rowSpouse:
			tree.Relationships = append(tree.Relationships, RawRelationship{
				Kind:    rowType,
				Person:  getColumn(record, colIndex, "person"),
				Related: getColumn(record, colIndex, "related"),
				LineNum: lineNum,
			})
		case "":
			// Blank separator rows are allowed.
		default:
			return nil, fmt.Errorf("line %d: invalid row type %q (valid: person, parent_child, spouse)", lineNum, rowType)
		}
	}

	return tree, nil
}

// parsePerson converts a CSV record to a RawPerson.
func (p *CSVParser) parsePerson(record []string, colIndex map[string]int, lineNum int) (RawPerson, error) {
	person := RawPerson{
		ID:        getColumn(record, colIndex, "id"),
		Name:      getColumn(record, colIndex, "name"),
		Gender:    getColumn(record, colIndex, "gender"),
		BirthDate: getColumn(record, colIndex, "birth_date"),
		DeathDate: getColumn(record, colIndex, "death_date"),
		Notes:     getColumn(record, colIndex, "notes"),
		LineNum:   lineNum,
	}

	if s := getColumn(record, colIndex, "birth_order"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return RawPerson{}, fmt.Errorf("line %d: invalid birth_order value %q: %w", lineNum, s, err)
		}
		person.BirthOrder = &n
	}
	if s := getColumn(record, colIndex, "alive"); s != "" {
		alive, err := strconv.ParseBool(s)
		if err != nil {
			return RawPerson{}, fmt.Errorf("line %d: invalid alive value %q: %w", lineNum, s, err)
		}
		person.Alive = &alive
	}

	return person, nil
}

// getColumn safely retrieves a trimmed column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}
