package service

import (
	"io/ioutil"
	"net/http"
	"time"

	"github.com/harmonia-project/midi-contract-tests/framework"
	"github.com/harmonia-project/midi-contract-tests/servicedef"
)

// VerifyResult is the outcome of the one verification request made per run.
type VerifyResult struct {
	Status int
	Body   []byte
}

// VerifyPorts issues a single GET to the service's MIDI port listing endpoint
// and requires a 200 status. Any other status, and any transport failure, is a
// VerificationError. The request is made exactly once; there are no retries,
// so a run always produces the same pass/fail signal for the same service
// behavior.
func VerifyPorts(addr Address, timeout time.Duration, logger framework.Logger) (VerifyResult, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	url := addr.BaseURL() + servicedef.PortsPath

	logger.Printf("GET %s", url)
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(url)
	if err != nil {
		return VerifyResult{}, &VerificationError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return VerifyResult{}, &VerificationError{URL: url, Err: err}
	}
	result := VerifyResult{Status: resp.StatusCode, Body: body}
	if resp.StatusCode != http.StatusOK {
		return result, &VerificationError{URL: url, Status: resp.StatusCode, Body: body}
	}
	if ports, ok := servicedef.ParsePortsResponse(body); ok {
		logger.Printf("Service returned 200 listing %d MIDI ports", len(ports.Ports))
	} else {
		logger.Printf("Service returned 200 with a %d-byte body", len(body))
	}
	return result, nil
}
