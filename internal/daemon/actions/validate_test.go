package actions

import (
	"errors"
	"reflect"
	"testing"
)

func TestIsPort(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"65535", true},
		{"8080", true},
		{"0", false},
		{"65536", false},
		{"", false},
		{"-1", false},
		{"+80", false},
		{"80a", false},
		{"123456", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsPort(tt.in); got != tt.want {
				t.Errorf("IsPort(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     any
		wantErr string
	}{
		{"valid connection", AddConnection{Tag: "a", Host: "b"}, ""},
		{"optional socks port", AddConnection{Tag: "a", Host: "b", SOCKSPort: "1080"}, ""},
		{"empty tag", AddConnection{Host: "b"}, "Connection Tag must not be empty"},
		{"empty host", AddConnection{Tag: "a"}, "SSH Host must not be empty"},
		{"bad socks port", AddConnection{Tag: "a", Host: "b", SOCKSPort: "x"}, "SOCKS Proxy Port must be a valid port between 1 and 65535"},
		{"empty domain", AddDomain{Connection: "a"}, "Host must not be empty"},
		{"local port first", AddLocalForward{Connection: "a", LocalPort: "0", RemotePort: "0"}, "Local Port must be a valid port between 1 and 65535"},
		{"remote port first", AddRemoteForward{Connection: "a", RemotePort: "", LocalPort: ""}, "Remote Port must be a valid port between 1 and 65535"},
		{"missing connection", AddRemoteForward{RemotePort: "1", LocalPort: "2"}, "Connection must not be empty"},
		{"forward entry", RemoveLocalForward{Entry: "db (5432 → 5432)"}, ""},
		{"bad forward entry", RemoveRemoteForward{Entry: "nonsense"}, `Remote Forward must look like "tag (src → dst)"`},
		{"empty test target", TestTarget{}, "Domain or Port must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("Validate() error = %v, want %q", err, tt.wantErr)
			}
			if !errors.Is(err, ErrValidation) {
				t.Error("error does not wrap ErrValidation")
			}
		})
	}
}

func TestRequestArgs(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want []string
	}{
		{"connection", AddConnection{Tag: "work", Host: "bastion"}, []string{"add-connection", "work", "bastion"}},
		{"connection with port", AddConnection{Tag: "work", Host: "bastion", SOCKSPort: "1080"}, []string{"add-connection", "work", "bastion", "1080"}},
		{"domain", AddDomain{Connection: "work", Host: "example.com"}, []string{"-c", "work", "add", "example.com"}},
		{"local forward", AddLocalForward{Connection: "work", LocalPort: "5432", RemotePort: "5433"}, []string{"-c", "work", "add", "-l", "5432", "5433"}},
		{"remote forward tagged", AddRemoteForward{Connection: "work", RemotePort: "8080", LocalPort: "3000", Tag: "web"}, []string{"-c", "work", "add", "-r", "8080", "3000", "web"}},
		{"rm connection", RemoveConnection{Tag: "work"}, []string{"rm-connection", "work"}},
		{"rm domain", RemoveDomain{Host: "example.com"}, []string{"rm", "example.com"}},
		{"rm local", RemoveLocalForward{Entry: "db (5432 → 5433)"}, []string{"rm", "-l", "5432"}},
		{"rm remote", RemoveRemoteForward{Entry: " (8080 → 3000)"}, []string{"rm", "-r", "8080"}},
		{"test", TestTarget{Target: "1080"}, []string{"test", "1080"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.Args(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Args() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStopArgs(t *testing.T) {
	if got := StopArgs(true); !reflect.DeepEqual(got, []string{"stop"}) {
		t.Errorf("StopArgs(true) = %v", got)
	}
	if got := StopArgs(false); !reflect.DeepEqual(got, []string{"stop", "--keep-ports"}) {
		t.Errorf("StopArgs(false) = %v", got)
	}
}
