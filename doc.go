/*
Package guibridge connects an immediate-mode GUI library to a host
application that owns the window, the GPU device and the input devices.

# Overview

An immediate-mode GUI rebuilds its widgets every frame and produces a list
of triangle batches (draw lists). The bridge feeds the GUI with translated
host input, replays its draw lists on the host's GPU device into an
offscreen render target, and lets the host composite that target over its
own frame.

The pieces are usable on their own:

	TextureRegistry   opaque handles for host textures referenced by draw commands
	GeometryBuffers   growable vertex/index buffers, two uploads per frame
	InputTranslator   host mouse/keyboard/wheel state to the GUI input model
	Replayer          draw lists to scissored, textured indexed draws
	HandlerRegistry   ordered render/update callbacks

Bridge wires them together behind a two-state frame machine.

# Quick Start

	dev, _ := opengl.NewDevice(window)
	bridge, err := guibridge.New(dev, imgui.NewFrontend(), opengl.NewGLFWInput(window))
	if err != nil {
	    return err
	}
	defer bridge.Close()

	bridge.Handlers().Add(&guibridge.FuncHandler{RenderFunc: drawDebugWindow})

	for !window.ShouldClose() {
	    bridge.UpdateHandlers(dt)

	    if err := bridge.Frame(dt); err != nil {
	        log.Println(err)
	    }

	    drawScene()
	    bridge.Composite()
	    window.SwapBuffers()
	}

# Frame states

A Bridge is Idle until BeginFrame and FrameOpen until EndFrame. Calling
BeginFrame twice, or EndFrame without BeginFrame, is a programming error and
panics. EndFrame always returns the bridge to Idle, even when replay fails,
so a frame that references an unbound texture is dropped and the next one
renders normally.

# Coordinates

Vertex positions and clip rectangles are in display units with the origin at
the top-left. The display scale converts display units to framebuffer
pixels. Scissor and viewport rectangles passed to a Device are framebuffer
pixels, top-left origin; backends flip them if their API needs it.

# Logging

The package logs resource growth and dropped frames through log/slog. Use
WithLogger to route it, or SetVerbose to enable debug output on the default
logger.
*/
package guibridge
