package env

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang/glog"
	"gopkg.in/yaml.v3"

	"github.com/robotalks/usbadda/pkg/adda"
	"github.com/robotalks/usbadda/pkg/transport"
)

// Config provides the options to reach a board.
type Config struct {
	Port         string        `yaml:"port"`
	CardID       int           `yaml:"card_id"`
	Baud         int           `yaml:"baud"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// MQTTURL specifies where ADC sweeps are published.
	// e.g. mqtt://host:port/topic-prefix
	MQTTURL string `yaml:"mqtt_url"`

	// ConfigFile is a YAML file with the fields above. Values in the file
	// override the environment, command line flags override the file.
	ConfigFile string `yaml:"-"`
}

var defaultConfig = Config{
	Port:         transport.DefaultAddress,
	Baud:         transport.DefaultBaud,
	ReadTimeout:  transport.DefaultReadTimeout,
	WriteTimeout: transport.DefaultWriteTimeout,
}

// flag names, also used to tell which fields were set on the command line.
const (
	flagPort         = "port"
	flagCardID       = "card"
	flagBaud         = "baud"
	flagReadTimeout  = "read-timeout"
	flagWriteTimeout = "write-timeout"
	flagMQTTURL      = "mqtt"
	flagConfigFile   = "config"
)

func init() {
	if val := os.Getenv("USBADDA_PORT"); val != "" {
		defaultConfig.Port = val
	}
	if val := os.Getenv("USBADDA_CARD_ID"); val != "" {
		if id, err := strconv.ParseInt(val, 0, 0); err == nil {
			defaultConfig.CardID = int(id)
		} else {
			glog.Warningf("ignore invalid USBADDA_CARD_ID %q", val)
		}
	}
	if val := os.Getenv("USBADDA_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			defaultConfig.Baud = baud
		} else {
			glog.Warningf("ignore invalid USBADDA_BAUD %q", val)
		}
	}
	if val := os.Getenv("USBADDA_MQTT_URL"); val != "" {
		defaultConfig.MQTTURL = val
	}
	if val := os.Getenv("USBADDA_CONFIG"); val != "" {
		defaultConfig.ConfigFile = val
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, flagPort, defaultConfig.Port, "Serial port or bridge URL (tcp://, ws://) of the board.")
	flag.IntVar(&defaultConfig.CardID, flagCardID, defaultConfig.CardID, "Card ID (0-15) of the board.")
	flag.IntVar(&defaultConfig.Baud, flagBaud, defaultConfig.Baud, "Serial baud rate.")
	flag.DurationVar(&defaultConfig.ReadTimeout, flagReadTimeout, defaultConfig.ReadTimeout, "Read timeout.")
	flag.DurationVar(&defaultConfig.WriteTimeout, flagWriteTimeout, defaultConfig.WriteTimeout, "Write timeout.")
	flag.StringVar(&defaultConfig.MQTTURL, flagMQTTURL, defaultConfig.MQTTURL, "MQTT broker URL for publishing ADC sweeps.")
	flag.StringVar(&defaultConfig.ConfigFile, flagConfigFile, defaultConfig.ConfigFile, "YAML config file.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Load creates a Config with defaults and merges the config file, keeping
// values explicitly set on the command line. Must be called after flag.Parse.
func Load() (*Config, error) {
	conf := NewConfig()
	if conf.ConfigFile == "" {
		return conf, nil
	}
	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})
	data, err := os.ReadFile(conf.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := conf.Merge(data, explicit); err != nil {
		return nil, fmt.Errorf("config %s: %w", conf.ConfigFile, err)
	}
	return conf, nil
}

// fileConfig is the YAML form of Config; nil means absent.
type fileConfig struct {
	Port         *string        `yaml:"port"`
	CardID       *int           `yaml:"card_id"`
	Baud         *int           `yaml:"baud"`
	ReadTimeout  *time.Duration `yaml:"read_timeout"`
	WriteTimeout *time.Duration `yaml:"write_timeout"`
	MQTTURL      *string        `yaml:"mqtt_url"`
}

// Merge applies YAML data on top of c, skipping fields named in keep by
// their flag name.
func (c *Config) Merge(data []byte, keep map[string]bool) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}
	if fc.Port != nil && !keep[flagPort] {
		c.Port = *fc.Port
	}
	if fc.CardID != nil && !keep[flagCardID] {
		c.CardID = *fc.CardID
	}
	if fc.Baud != nil && !keep[flagBaud] {
		c.Baud = *fc.Baud
	}
	if fc.ReadTimeout != nil && !keep[flagReadTimeout] {
		c.ReadTimeout = *fc.ReadTimeout
	}
	if fc.WriteTimeout != nil && !keep[flagWriteTimeout] {
		c.WriteTimeout = *fc.WriteTimeout
	}
	if fc.MQTTURL != nil && !keep[flagMQTTURL] {
		c.MQTTURL = *fc.MQTTURL
	}
	return nil
}

// TransportConfig converts to transport.Config.
func (c *Config) TransportConfig() transport.Config {
	return transport.Config{
		Address:      c.Port,
		Baud:         c.Baud,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}

// OpenDevice opens the transport and creates the board session.
func (c *Config) OpenDevice() (*adda.Device, error) {
	if c.CardID < 0 || c.CardID > adda.MaxCardID {
		return nil, fmt.Errorf("card id %d out of range [0, %d]: %w", c.CardID, adda.MaxCardID, adda.ErrInvalidArgument)
	}
	glog.Infof("opening card %x on %s at %d bps", c.CardID, c.Port, c.Baud)
	t, err := transport.Open(c.TransportConfig())
	if err != nil {
		return nil, err
	}
	dev, err := adda.New(t, c.CardID)
	if err != nil {
		t.Close()
		return nil, err
	}
	dev.Conn().PhaseTimeout = c.ReadTimeout
	return dev, nil
}
