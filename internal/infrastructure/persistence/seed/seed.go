// Package seed ingests the flat-file seed lists used to bootstrap a fresh
// deployment: students, company representatives, career center staff and
// initial opportunity listings. The files are plain CSV with a header row,
// matching the original intake format.
//
//	students.csv:        id,name,credential,year,major
//	representatives.csv: id,name,credential,company,department,position,account_status
//	staff.csv:           id,name,credential,department
//	opportunities.csv:   id,owner_id,title,description,preferred_major,level,open_date,close_date,slots
//
// Dates use YYYY-MM-DD. Loading stops at the first malformed row so a bad
// seed file is refused whole rather than half-ingested.
package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/identity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/opportunity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
)

const dateLayout = "2006-01-02"

// LoadStudents parses students.csv.
func LoadStudents(path string) ([]*identity.Student, error) {
	rows, err := readCSV(path, 5)
	if err != nil {
		return nil, err
	}
	out := make([]*identity.Student, 0, len(rows))
	for i, row := range rows {
		id, err := shared.NewUserID(row[0])
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		year, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil {
			return nil, rowErr(path, i, fmt.Errorf("year of study: %w", err))
		}
		major, err := shared.ParseMajor(row[4])
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		st, err := identity.NewStudent(id, row[1], row[2], year, major)
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		out = append(out, st)
	}
	return out, nil
}

// LoadRepresentatives parses representatives.csv. The account_status column
// lets a seed file ship pre-approved accounts.
func LoadRepresentatives(path string) ([]*identity.CompanyRepresentative, error) {
	rows, err := readCSV(path, 7)
	if err != nil {
		return nil, err
	}
	out := make([]*identity.CompanyRepresentative, 0, len(rows))
	for i, row := range rows {
		id, err := shared.NewUserID(row[0])
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		status, err := identity.ParseAccountStatus(row[6])
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		rep, err := identity.RestoreRepresentative(identity.RepresentativeMemento{
			ID:            id,
			Name:          row[1],
			Credential:    row[2],
			Company:       row[3],
			Department:    row[4],
			Position:      row[5],
			AccountStatus: status,
		})
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		out = append(out, rep)
	}
	return out, nil
}

// LoadStaff parses staff.csv.
func LoadStaff(path string) ([]*identity.CareerCenterStaff, error) {
	rows, err := readCSV(path, 4)
	if err != nil {
		return nil, err
	}
	out := make([]*identity.CareerCenterStaff, 0, len(rows))
	for i, row := range rows {
		id, err := shared.NewUserID(row[0])
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		staff, err := identity.NewStaff(id, row[1], row[2], row[3])
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		out = append(out, staff)
	}
	return out, nil
}

// LoadOpportunities parses opportunities.csv. Seeded listings start in
// PENDING and invisible, same as freshly posted ones.
func LoadOpportunities(path string) ([]*opportunity.Opportunity, error) {
	rows, err := readCSV(path, 9)
	if err != nil {
		return nil, err
	}
	out := make([]*opportunity.Opportunity, 0, len(rows))
	for i, row := range rows {
		ownerID, err := shared.NewUserID(row[1])
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		major, err := shared.ParseMajor(row[4])
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		level, err := opportunity.ParseLevel(row[5])
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		open, err := time.Parse(dateLayout, strings.TrimSpace(row[6]))
		if err != nil {
			return nil, rowErr(path, i, fmt.Errorf("open date: %w", err))
		}
		close, err := time.Parse(dateLayout, strings.TrimSpace(row[7]))
		if err != nil {
			return nil, rowErr(path, i, fmt.Errorf("close date: %w", err))
		}
		window, err := shared.NewDateRange(open, close)
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		slots, err := strconv.Atoi(strings.TrimSpace(row[8]))
		if err != nil {
			return nil, rowErr(path, i, fmt.Errorf("slots: %w", err))
		}
		o, err := opportunity.New(strings.TrimSpace(row[0]), ownerID, opportunity.Draft{
			Title:          row[2],
			Description:    row[3],
			PreferredMajor: major,
			Level:          level,
			Window:         window,
			Slots:          slots,
		})
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		out = append(out, o)
	}
	return out, nil
}

// readCSV reads all data rows, skipping the header, enforcing a fixed
// column count.
func readCSV(path string, columns int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = columns
	r.TrimLeadingSpace = true

	var rows [][]string
	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("seed: parse %s: %w", path, err)
		}
		if first {
			first = false
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func rowErr(path string, index int, err error) error {
	// +2 accounts for the header and 1-based line numbers.
	return fmt.Errorf("seed: %s line %d: %w", path, index+2, err)
}
