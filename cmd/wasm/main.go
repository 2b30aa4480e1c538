//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/sketchdeck/sketchdeck/backend-go/internal/editor"
	"github.com/sketchdeck/sketchdeck/backend-go/internal/scene"
	"github.com/sketchdeck/sketchdeck/backend-go/internal/snap"
)

var ed *editor.Editor

func main() {
	ed = editor.New(scene.NewSampleDocument(), snap.DefaultThreshold)

	api := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	api.Set("loadScene", js.FuncOf(loadScene))
	api.Set("setSelection", js.FuncOf(setSelection))
	api.Set("beginDrag", js.FuncOf(beginDrag))
	api.Set("dragTo", js.FuncOf(dragTo))
	api.Set("endDrag", js.FuncOf(endDrag))
	api.Set("cancelDrag", js.FuncOf(cancelDrag))
	api.Set("setProperty", js.FuncOf(setProperty))
	api.Set("setAspectLock", js.FuncOf(setAspectLock))
	api.Set("alignCenters", js.FuncOf(alignCenters))

	// --- Queries (frontend ← backend) ---
	api.Set("getSelection", js.FuncOf(getSelection))
	api.Set("getGuides", js.FuncOf(getGuides))
	api.Set("getProperties", js.FuncOf(getProperties))
	api.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	api.Set("hitTest", js.FuncOf(hitTest))
	api.Set("getRenderCount", js.FuncOf(getRenderCount))

	js.Global().Set("sketchdeckEditor", api)
	js.Global().Set("sketchdeckWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func loadScene(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing scene JSON"})
	}

	var payload struct {
		Canvas  scene.Canvas   `json:"canvas"`
		Objects []scene.Object `json:"objects"`
	}
	if err := json.Unmarshal([]byte(args[0].String()), &payload); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	doc := scene.NewDocument(payload.Canvas)
	for _, obj := range payload.Objects {
		if err := doc.Add(obj); err != nil {
			return js.ValueOf(map[string]interface{}{"error": err.Error()})
		}
	}
	ed = editor.New(doc, snap.DefaultThreshold)

	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		ed.SetSelection(nil)
		return nil
	}

	arr := args[0]
	if arr.Type() != js.TypeObject {
		ed.SetSelection(nil)
		return nil
	}

	length := arr.Length()
	ids := make([]string, length)
	for i := 0; i < length; i++ {
		ids[i] = arr.Index(i).String()
	}
	ed.SetSelection(ids)
	return nil
}

func beginDrag(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	ed.BeginDrag(args[0].String())
	return nil
}

func dragTo(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	ed.DragTo(args[0].Float(), args[1].Float())
	return nil
}

func endDrag(this js.Value, args []js.Value) interface{} {
	ed.EndDrag()
	return nil
}

func cancelDrag(this js.Value, args []js.Value) interface{} {
	ed.CancelDrag()
	return nil
}

func setProperty(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(map[string]interface{}{"error": "missing key or value"})
	}
	key := args[0].String()
	value := json.RawMessage(args[1].String())
	if err := ed.ApplyProperty(key, value); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setAspectLock(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	ed.SetAspectLock(args[0].Bool())
	return nil
}

func alignCenters(this js.Value, args []js.Value) interface{} {
	ed.AlignCenters()
	return nil
}

// --- Query Handlers ---

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.GetSelection())
}

func getGuides(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.GetGuides())
}

func getProperties(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.GetProperties())
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.GetSelectionBounds())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(ed.HitTest(args[0].Float(), args[1].Float()))
}

func getRenderCount(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.RenderCount())
}
