package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "keeps allowed flag with separate value",
			args:    []string{"-n", "nats://localhost:4222", "-x", "1"},
			allowed: []string{"-n"},
			want:    []string{"-n", "nats://localhost:4222"},
		},
		{
			name:    "keeps allowed flag with equals value",
			args:    []string{"--config=conf.json", "-other=1"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "drops unknown flags entirely",
			args:    []string{"-z", "v", "-y"},
			allowed: []string{"-n"},
			want:    []string{},
		},
		{
			name:    "flag followed by another flag has no value",
			args:    []string{"-n", "-d", "dsn"},
			allowed: []string{"-n", "-d"},
			want:    []string{"-n", "-d", "dsn"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"cmd", "-c", "server.json", "-n", "nats://localhost:4222"}
	assert.Equal(t, "server.json", JsonConfigFlags())

	os.Args = []string{"cmd", "-n", "nats://localhost:4222"}
	assert.Equal(t, "", JsonConfigFlags())
}
