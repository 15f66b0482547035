//go:build js && wasm

// GoVeil WASM - Client-side embedding and extraction.
// Compiled with: GOOS=js GOARCH=wasm go build -o goveil.wasm ./clients/wasm/
//
// All work happens inside the browser; carriers and payloads never leave
// the page.
package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/xob0t/GoVeil/pkg/carrier"
	"github.com/xob0t/GoVeil/pkg/envelope"
	"github.com/xob0t/GoVeil/pkg/stego"
)

func main() {
	fmt.Println("GoVeil WASM loaded")

	// Register JS-callable functions.
	js.Global().Set("goVeilEmbed", js.FuncOf(embed))
	js.Global().Set("goVeilExtract", js.FuncOf(extract))
	js.Global().Set("goVeilCapacity", js.FuncOf(capacity))
	js.Global().Set("goVeilReady", js.ValueOf(true))

	// Block forever (WASM must not exit).
	select {}
}

// decodeCarrier decodes a base64 image into a pixel grid.
func decodeCarrier(b64 string) (*stego.PixelGrid, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("invalid image base64: %w", err)
	}
	return carrier.Decode(bytes.NewReader(data))
}

// goVeilEmbed(carrierB64, payloadB64, key, compression) - embed and
// return the stego image as base64 PNG. compression is "auto", "none",
// "lz4", "zstd" or "raw" to skip the envelope entirely.
func embed(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf("error: need carrierB64, payloadB64, key")
	}

	grid, err := decodeCarrier(args[0].String())
	if err != nil {
		return js.ValueOf("error: " + err.Error())
	}

	payload, err := base64.StdEncoding.DecodeString(args[1].String())
	if err != nil {
		return js.ValueOf("error: invalid payload base64: " + err.Error())
	}
	key := args[2].String()

	compression := "auto"
	if len(args) > 3 {
		compression = args[3].String()
	}
	if !strings.EqualFold(compression, "raw") {
		comp, err := envelope.ParseCompression(compression)
		if err != nil {
			return js.ValueOf("error: " + err.Error())
		}
		if payload, err = envelope.Seal(payload, key, comp); err != nil {
			return js.ValueOf("error: seal: " + err.Error())
		}
	}

	eng := stego.NewDefault()
	if err := eng.Embed(grid, payload, key); err != nil {
		return js.ValueOf("error: embed: " + err.Error())
	}

	var buf bytes.Buffer
	if err := carrier.Encode(&buf, ".png", grid); err != nil {
		return js.ValueOf("error: encode: " + err.Error())
	}
	return js.ValueOf(base64.StdEncoding.EncodeToString(buf.Bytes()))
}

// goVeilExtract(imageB64, key, raw) - extract and return the payload as
// base64.
func extract(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("error: need imageB64, key")
	}

	grid, err := decodeCarrier(args[0].String())
	if err != nil {
		return js.ValueOf("error: " + err.Error())
	}
	key := args[1].String()
	raw := len(args) > 2 && args[2].Truthy()

	payload, err := stego.NewDefault().Extract(grid, key)
	if err != nil {
		return js.ValueOf("error: extract: " + err.Error())
	}

	if !raw {
		if payload, err = envelope.Open(payload, key); err != nil {
			return js.ValueOf("error: wrong passphrase or damaged carrier")
		}
	}
	return js.ValueOf(base64.StdEncoding.EncodeToString(payload))
}

// goVeilCapacity(carrierB64, key) - survey the carrier and return a JS
// object with slot and byte counts.
func capacity(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("error: need carrierB64, key")
	}

	grid, err := decodeCarrier(args[0].String())
	if err != nil {
		return js.ValueOf("error: " + err.Error())
	}

	rep, err := stego.NewDefault().Survey(grid, args[1].String())
	if err != nil {
		return js.ValueOf("error: survey: " + err.Error())
	}

	return js.ValueOf(map[string]interface{}{
		"totalSlots":    rep.TotalSlots,
		"acceptedSlots": rep.AcceptedSlots,
		"capacityBits":  rep.CapacityBits,
		"capacityBytes": rep.CapacityBytes,
	})
}
