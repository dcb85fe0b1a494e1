package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/calclab/calc-engine/internal/model"
)

// calcRow is the column encoding shared by the SQL stores.
type calcRow struct {
	inputs  string
	value   string
	percent *string
}

func toRow(c *model.Calculation) (calcRow, error) {
	inputs := c.Inputs
	if inputs == nil {
		inputs = map[string]float64{}
	}
	data, err := json.Marshal(inputs)
	if err != nil {
		return calcRow{}, fmt.Errorf("encode inputs: %w", err)
	}

	row := calcRow{inputs: string(data), value: c.Value.String()}
	if c.Percent != nil {
		p := c.Percent.String()
		row.percent = &p
	}
	return row, nil
}

// rowScanner is the subset of row iteration shared by pgx.Rows and *sql.Rows.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// timeDest scans created_at directly into a time.Time.
func timeDest(t *time.Time) any { return t }

// scanCalculations reads rows selected as
// id, kind, client_id, inputs, value, percent, verdict, finite, display, created_at.
// createdDest adapts the created_at column to the driver's encoding.
func scanCalculations(rows rowScanner, createdDest func(*time.Time) any) ([]model.Calculation, error) {
	var calcs []model.Calculation
	for rows.Next() {
		var c model.Calculation
		var inputs, value string
		var percent *string
		var created time.Time

		if err := rows.Scan(&c.ID, &c.Kind, &c.ClientID, &inputs, &value, &percent,
			&c.Verdict, &c.Finite, &c.Display, createdDest(&created)); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(inputs), &c.Inputs); err != nil {
			return nil, fmt.Errorf("decode inputs of %s: %w", c.ID, err)
		}
		v, err := model.ParseFloat(value)
		if err != nil {
			return nil, err
		}
		c.Value = v
		if percent != nil {
			p, err := model.ParseFloat(*percent)
			if err != nil {
				return nil, err
			}
			c.Percent = &p
		}
		c.CreatedAt = created.UTC()

		calcs = append(calcs, c)
	}
	return calcs, rows.Err()
}
