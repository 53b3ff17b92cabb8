package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fixtures набор стартовых данных каталога
type Fixtures struct {
	Services  []ServiceFixture  `yaml:"services"`
	Providers []ProviderFixture `yaml:"providers"`
}

type ServiceFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
}

type ProviderFixture struct {
	Name            string   `yaml:"name"`
	Email           string   `yaml:"email"`
	Password        string   `yaml:"password"`
	Phone           string   `yaml:"phone,omitempty"`
	ServiceType     string   `yaml:"service_type"`
	Designation     string   `yaml:"designation,omitempty"`
	Location        string   `yaml:"location"`
	Bio             string   `yaml:"bio,omitempty"`
	ExperienceYears int      `yaml:"experience_years,omitempty"`
	HourlyRate      float64  `yaml:"hourly_rate,omitempty"`
	ServicesOffered []string `yaml:"services_offered,omitempty"`

	// день недели -> список открытых слотов ("9:00 AM")
	Schedule      map[string][]string `yaml:"schedule,omitempty"`
	BlackoutDates []string            `yaml:"blackout_dates,omitempty"`
}

// Load читает YAML файл фикстур; неизвестные поля запрещены
func Load(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to read fixtures: %w", err)
	}
	return Parse(data)
}

// Parse разбирает фикстуры из байт
func Parse(data []byte) (*Fixtures, error) {
	var f Fixtures
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("catalog: failed to parse YAML: %w", err)
	}

	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("catalog: invalid fixtures: %w", err)
	}
	return &f, nil
}

func (f *Fixtures) validate() error {
	var errs []error

	services := make(map[string]struct{}, len(f.Services))
	for i, s := range f.Services {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("services[%d]: name is required", i))
			continue
		}
		if _, dup := services[strings.ToLower(name)]; dup {
			errs = append(errs, fmt.Errorf("services[%d]: duplicate name %q", i, name))
		}
		services[strings.ToLower(name)] = struct{}{}
	}

	emails := make(map[string]struct{}, len(f.Providers))
	for i, p := range f.Providers {
		if strings.TrimSpace(p.Email) == "" || strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Errorf("providers[%d]: name and email are required", i))
			continue
		}
		email := strings.ToLower(strings.TrimSpace(p.Email))
		if _, dup := emails[email]; dup {
			errs = append(errs, fmt.Errorf("providers[%d]: duplicate email %q", i, p.Email))
		}
		emails[email] = struct{}{}
		if strings.TrimSpace(p.ServiceType) == "" {
			errs = append(errs, fmt.Errorf("providers[%d]: service_type is required", i))
		}
	}

	return errors.Join(errs...)
}
