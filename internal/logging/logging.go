package logging

import (
	logging "github.com/ipfs/go-log/v2"
	"github.com/pkg/errors"
)

// Subsystems имена логгеров сервиса.
var Subsystems = []string{
	"api",
	"escrow",
	"custody",
	"auth",
	"handlers",
	"expirer",
	"notifications",
	"event-cache",
	"storage",
}

// Setup настраивает вывод go-log и выставляет уровень всем подсистемам сервиса.
func Setup(level string) error {
	if level == "" {
		level = "info"
	}
	if _, err := logging.LevelFromString(level); err != nil {
		return errors.Wrapf(err, "parsing log level %q", level)
	}
	logging.SetupLogging(logging.Config{
		Format: logging.ColorizedOutput,
		Stderr: true,
		Level:  logging.LevelError,
	})
	for _, name := range Subsystems {
		// логгер регистрируется при первом обращении
		logging.Logger(name)
		if err := logging.SetLogLevel(name, level); err != nil {
			return errors.Wrapf(err, "setting up logger %s", name)
		}
	}
	return nil
}
