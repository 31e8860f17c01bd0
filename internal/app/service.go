package app

import (
	"github.com/innocenzi/dependi/internal/adapters"
	"github.com/innocenzi/dependi/internal/ports"
	"github.com/innocenzi/dependi/internal/types"
)

type Service struct {
	Manifest     func(path string) (ports.ManifestPort, error)
	Registry     func(eco types.Ecosystem, baseURL string) (ports.RegistryPort, error)
	OpenDocument func(path string) (ports.DocumentPort, error)
	Advisories   ports.AdvisoryPort
	Prefs        ports.PrefsPort
	Session      *Session
}

func NewService() Service {
	return Service{
		Manifest: adapters.ManifestForPath,
		Registry: adapters.RegistryForEcosystem,
		OpenDocument: func(path string) (ports.DocumentPort, error) {
			return adapters.NewFileDocument(path)
		},
		Advisories: adapters.NewOSVAdvisoryAdapter(""),
		Prefs:      adapters.NewPrefsFileAdapter(),
		Session:    NewSession(),
	}
}
