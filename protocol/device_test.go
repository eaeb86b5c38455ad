package protocol

import (
	"errors"
	"testing"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in      string
		want    Address
		wantErr bool
	}{
		{in: "E1F0F0F0F0", want: DefaultTxAddress},
		{in: "d2:f0:f0:f0:f0", want: DefaultRxAddress},
		{in: "0xE7E7E7E7E7", want: Address{0xE7, 0xE7, 0xE7, 0xE7, 0xE7}},
		{in: "E1F0F0F0", wantErr: true},
		{in: "zzzzzzzzzz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAddress(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAddress() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAddress) {
					t.Errorf("error = %v, want ErrInvalidAddress", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseAddress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddressString(t *testing.T) {
	if s := DefaultTxAddress.String(); s != "E1F0F0F0F0" {
		t.Errorf("String() = %q", s)
	}
}

func TestLinkConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*LinkConfig)
		wantErr error
	}{
		{name: "defaults", mutate: func(*LinkConfig) {}},
		{name: "channel too high", mutate: func(c *LinkConfig) { c.Channel = 126 }, wantErr: ErrInvalidChannel},
		{name: "bad data rate", mutate: func(c *LinkConfig) { c.DataRate = 3 }, wantErr: ErrInvalidConfig},
		{name: "bad power", mutate: func(c *LinkConfig) { c.Power = 4 }, wantErr: ErrInvalidConfig},
		{name: "same addresses", mutate: func(c *LinkConfig) { c.RxAddress = c.TxAddress }, wantErr: ErrInvalidAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultLinkConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFrequency(t *testing.T) {
	if f := DefaultLinkConfig().FrequencyMHz(); f != 2446 {
		t.Errorf("FrequencyMHz() = %v, want 2446", f)
	}
}
