package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BirthDateLayout is the calendar-date format used for patient birth dates.
const BirthDateLayout = "2006-01-02"

// BloodPressure is a systolic/diastolic pair in mmHg.
type BloodPressure struct {
	Upper int `json:"upper" yaml:"upper"`
	Lower int `json:"lower" yaml:"lower"`
}

// Equal reports whether both values match.
func (p BloodPressure) Equal(other BloodPressure) bool {
	return p.Upper == other.Upper && p.Lower == other.Lower
}

func (p BloodPressure) String() string {
	return fmt.Sprintf("%d/%d", p.Upper, p.Lower)
}

// HealthInfo is a patient's personal baseline, not a population norm.
type HealthInfo struct {
	NormalTemperature decimal.Decimal `json:"normal_temperature"`
	NormalPressure    BloodPressure   `json:"normal_pressure"`
}

// Patient is a directory entry with the baseline used for vital checks.
type Patient struct {
	ID        string     `json:"id" db:"id"`
	FirstName string     `json:"first_name" db:"first_name"`
	LastName  string     `json:"last_name" db:"last_name"`
	BirthDate time.Time  `json:"birth_date" db:"birth_date"`
	Health    HealthInfo `json:"health"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// FullName joins first and last name, ignoring stray whitespace.
func (p *Patient) FullName() string {
	return strings.Join(strings.Fields(p.FirstName+" "+p.LastName), " ")
}

// Vital names a kind of reading.
type Vital string

const (
	VitalBloodPressure Vital = "blood_pressure"
	VitalTemperature   Vital = "temperature"
)
