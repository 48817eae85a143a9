package coursetree

import "strings"

// Flatten produces one UnitRecord per unit in the course tree, in traversal
// order. Every unit yields a record, including units with no extractable
// content, whose record carries an empty content string and empty (never
// null) heading, code, and image sequences.
func Flatten(c *Course) []*UnitRecord {
	var records []*UnitRecord
	for _, lp := range c.LearningPaths {
		for _, m := range lp.Modules {
			for _, u := range m.Units {
				records = append(records, RecordFromUnit(c, lp, m, u))
			}
		}
	}
	return records
}

// RecordFromUnit builds the flattened record for a single unit, splitting
// its ordered content blocks into the record's typed fields.
func RecordFromUnit(c *Course, lp *LearningPath, m *Module, u *Unit) *UnitRecord {
	rec := &UnitRecord{
		CourseTitle:  c.Title,
		LearningPath: lp.Title,
		ModuleTitle:  m.Title,
		UnitTitle:    u.Title,
		UnitURL:      u.URL,
		Headings:     []Heading{},
		CodeBlocks:   []string{},
		Images:       []Image{},
		ScrapedAt:    c.ScrapedAt,
	}

	var text []string
	for _, b := range u.Blocks {
		switch b.Kind {
		case BlockHeading:
			rec.Headings = append(rec.Headings, Heading{Level: b.Level, Text: b.Text})
		case BlockText:
			text = append(text, b.Text)
		case BlockCode:
			rec.CodeBlocks = append(rec.CodeBlocks, b.Code)
		case BlockImage:
			if b.Image != nil {
				rec.Images = append(rec.Images, *b.Image)
			}
		}
	}
	rec.Content = strings.Join(text, "\n\n")

	return rec
}

// BlocksContent concatenates the text blocks of a block sequence. It is the
// same joining rule Flatten applies to the record's content field.
func BlocksContent(blocks []ContentBlock) string {
	var text []string
	for _, b := range blocks {
		if b.Kind == BlockText {
			text = append(text, b.Text)
		}
	}
	return strings.Join(text, "\n\n")
}
