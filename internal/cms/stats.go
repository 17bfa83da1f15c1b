package cms

import (
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/cran-montage/cranweb/internal/domain"
)

// CompanyStats are the four figures on the about-page counter strip.
type CompanyStats struct {
	Experience int `json:"experience" mapstructure:"experience"`
	Projects   int `json:"projects" mapstructure:"projects"`
	Clients    int `json:"clients" mapstructure:"clients"`
	Employees  int `json:"employees" mapstructure:"employees"`
}

const companyFoundedYear = 2008

const (
	defaultProjects  = 500
	defaultClients   = 250
	defaultEmployees = 80
)

// DefaultExperienceYears is used when the stats row carries no
// experience figure: years since the company was founded.
func DefaultExperienceYears() int {
	return time.Now().Year() - companyFoundedYear
}

// DecodeCompanyStats reads the stats figures out of a metadata map,
// filling hardcoded defaults for keys that are absent or zero. The map
// comes from a free-form admin form, so values may arrive as numbers
// or numeric strings; decoding is weakly typed on purpose.
func DecodeCompanyStats(metadata domain.JSONMap) CompanyStats {
	var stats CompanyStats
	if metadata != nil {
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &stats,
		})
		if err == nil {
			if err := dec.Decode(map[string]interface{}(metadata)); err != nil {
				zap.L().Warn("stats metadata decode failed", zap.Error(err))
				stats = CompanyStats{}
			}
		}
	}
	if stats.Experience == 0 {
		stats.Experience = DefaultExperienceYears()
	}
	if stats.Projects == 0 {
		stats.Projects = defaultProjects
	}
	if stats.Clients == 0 {
		stats.Clients = defaultClients
	}
	if stats.Employees == 0 {
		stats.Employees = defaultEmployees
	}
	return stats
}
