package sde

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteSource reads Type/Attribute/Effect/Modifier records from a SQLite
// static-data export: a `types` table for identity, `typeAttributes`/
// `dogmaAttributes` for base values and metadata, and `dogmaEffects` for
// the modifier JSON blob.
type SQLiteSource struct {
	db   *sql.DB
	path string
}

// OpenSQLiteSource opens a read-only connection to a SQLite bundle.
func OpenSQLiteSource(dbPath string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return nil, fmt.Errorf("sde: open %s: %w", dbPath, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sde: ping %s: %w", dbPath, err)
	}
	return &SQLiteSource{db: db, path: dbPath}, nil
}

// Close closes the underlying connection.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// Name implements Source.
func (s *SQLiteSource) Name() string { return s.path }

type modifierRow struct {
	State       int    `json:"state"`
	Context     int    `json:"context"`
	SrcAttr     int64  `json:"srcAttr"`
	Operator    int    `json:"operator"`
	TgtAttr     int64  `json:"tgtAttr"`
	Domain      int    `json:"domain"`
	FilterType  int    `json:"filterType"`
	FilterValue int64  `json:"filterValue"`
}

// Type implements Source.
func (s *SQLiteSource) Type(typeID int64) (*Type, bool) {
	var groupID, categoryID int64
	err := s.db.QueryRow(`SELECT groupID, categoryID FROM types WHERE typeID = ?`, typeID).
		Scan(&groupID, &categoryID)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		return nil, false
	}

	t := &Type{
		ID:         typeID,
		GroupID:    groupID,
		CategoryID: categoryID,
		Attributes: make(map[AttrID]float64),
	}

	attrRows, err := s.db.Query(`SELECT attributeID, value FROM typeAttributes WHERE typeID = ?`, typeID)
	if err == nil {
		defer attrRows.Close()
		for attrRows.Next() {
			var attrID int64
			var value float64
			if attrRows.Scan(&attrID, &value) == nil {
				t.Attributes[AttrID(attrID)] = value
			}
		}
	}

	skillRows, err := s.db.Query(`SELECT skillTypeID FROM typeRequiredSkills WHERE typeID = ?`, typeID)
	if err == nil {
		defer skillRows.Close()
		for skillRows.Next() {
			var skillID int64
			if skillRows.Scan(&skillID) == nil {
				t.RequiredSkills = append(t.RequiredSkills, skillID)
			}
		}
	}

	effRows, err := s.db.Query(`
		SELECT e.effectID, e.effectCategory, e.modifierInfo, te.isDefault
		FROM typeEffects te
		JOIN dogmaEffects e ON e.effectID = te.effectID
		WHERE te.typeID = ?`, typeID)
	if err == nil {
		defer effRows.Close()
		for effRows.Next() {
			var effectID int64
			var category int
			var modifierJSON sql.NullString
			var isDefault bool
			if effRows.Scan(&effectID, &category, &modifierJSON, &isDefault) != nil {
				continue
			}

			eff := Effect{ID: effectID, Category: EffectCategory(category)}
			if modifierJSON.Valid && modifierJSON.String != "" {
				var rows []modifierRow
				if json.Unmarshal([]byte(modifierJSON.String), &rows) == nil {
					for _, r := range rows {
						eff.Modifiers = append(eff.Modifiers, Modifier{
							State:       State(r.State),
							Context:     Context(r.Context),
							SrcAttr:     AttrID(r.SrcAttr),
							Operator:    Operator(r.Operator),
							TgtAttr:     AttrID(r.TgtAttr),
							Domain:      Domain(r.Domain),
							FilterType:  FilterType(r.FilterType),
							FilterValue: r.FilterValue,
						})
					}
				}
			}

			t.Effects = append(t.Effects, eff)
			if isDefault {
				last := t.Effects[len(t.Effects)-1]
				t.DefaultEffect = &last
			}
		}
	}

	return t, true
}

// Attribute implements Source.
func (s *SQLiteSource) Attribute(attr AttrID) (Attribute, bool) {
	var stackable, highIsGood int
	var defaultValue float64
	err := s.db.QueryRow(
		`SELECT COALESCE(stackable, 0), COALESCE(highIsGood, 0), COALESCE(defaultValue, 0) FROM dogmaAttributes WHERE attributeID = ?`,
		int64(attr),
	).Scan(&stackable, &highIsGood, &defaultValue)
	if err != nil {
		return Attribute{}, false
	}
	return Attribute{
		ID:           attr,
		Stackable:    stackable != 0,
		HighIsGood:   highIsGood != 0,
		DefaultValue: defaultValue,
	}, true
}

var _ Source = (*SQLiteSource)(nil)
