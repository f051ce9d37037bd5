//go:build windows

package announce

import (
	"context"
	"fmt"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

func platformEngines(conf *Configuration) []Engine {
	return []Engine{
		&sapiEngine{conf: conf},
		&espeakEngine{conf: conf, binary: "espeak-ng"},
	}
}

// oleSFalse is the COM S_FALSE HRESULT (CoInitialize: already
// initialized); go-ole does not export it.
const oleSFalse = 0x00000001

// sapiEngine speaks through the Windows Speech API (SAPI.SpVoice) via COM.
type sapiEngine struct {
	conf *Configuration
}

func (this *sapiEngine) Name() string { return "sapi" }

func (this *sapiEngine) Available() bool { return true }

func (this *sapiEngine) Speak(ctx context.Context, text string) error {
	done := make(chan error, 1)
	go func() {
		done <- this.speak(text)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func (this *sapiEngine) speak(text string) error {
	if err := ole.CoInitialize(0); err != nil {
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != oleSFalse {
			return fmt.Errorf("cannot initialize COM: %w", err)
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("SAPI.SpVoice")
	if err != nil {
		return fmt.Errorf("cannot create SAPI voice: %w", err)
	}
	defer unknown.Release()

	voice, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return fmt.Errorf("cannot access SAPI voice: %w", err)
	}
	defer voice.Release()

	if _, err := oleutil.PutProperty(voice, "Rate", this.sapiRate()); err != nil {
		return fmt.Errorf("cannot set SAPI rate: %w", err)
	}

	if _, err := oleutil.CallMethod(voice, "Speak", text); err != nil {
		return fmt.Errorf("cannot speak via SAPI: %w", err)
	}
	return nil
}

// sapiRate maps words per minute onto the SAPI -10..+10 scale, where 0
// is roughly 150 words per minute.
func (this *sapiEngine) sapiRate() int {
	rate := (int(this.conf.Rate) - 150) / 25
	if rate < -10 {
		return -10
	}
	if rate > 10 {
		return 10
	}
	return rate
}
