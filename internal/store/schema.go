package store

// schema is the reader application's contract. Column names and types must
// not change without a matching app release.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS works (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0,
		category TEXT,
		meta_json TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS sections (
		id TEXT PRIMARY KEY,
		work_id TEXT NOT NULL,
		title TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0,
		type TEXT,
		FOREIGN KEY(work_id) REFERENCES works(id)
	)`,
	`CREATE TABLE IF NOT EXISTS paragraphs (
		id TEXT PRIMARY KEY,
		section_id TEXT NOT NULL,
		text TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0,
		is_arabic INTEGER DEFAULT 0,
		page_no INTEGER,
		FOREIGN KEY(section_id) REFERENCES sections(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sections_work ON sections(work_id)`,
	`CREATE INDEX IF NOT EXISTS idx_paragraphs_section ON paragraphs(section_id)`,
	`CREATE INDEX IF NOT EXISTS idx_paragraphs_section_order ON paragraphs(section_id, order_index)`,
}
