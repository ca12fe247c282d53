package transcribe

import "fmt"

// Config selects and configures a transcription backend
type Config struct {
	Backend       string              `yaml:"backend" validate:"oneof=whisper_server openai"`
	WhisperServer WhisperServerConfig `yaml:"whisper_server"`
	OpenAI        OpenAIConfig        `yaml:"openai"`
}

// New creates the configured backend
func New(config Config) (Transcriber, error) {
	switch config.Backend {
	case "", BackendWhisperServer:
		if config.WhisperServer.BaseURL == "" {
			return nil, fmt.Errorf("whisper_server base_url is required")
		}
		return NewWhisperServer(config.WhisperServer), nil
	case BackendOpenAI:
		if config.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("openai backend requires OPENAI_API_KEY")
		}
		return NewOpenAI(config.OpenAI), nil
	default:
		return nil, fmt.Errorf("unknown transcription backend %q", config.Backend)
	}
}
