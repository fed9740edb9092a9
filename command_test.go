package glint

import "testing"

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		ct   CommandType
		want string
	}{
		{CmdBeginFrame, "BeginFrame"},
		{CmdEndFrame, "EndFrame"},
		{CmdBindPipeline, "BindPipeline"},
		{CmdBindVertexBuffer, "BindVertexBuffer"},
		{CmdBindIndexBuffer, "BindIndexBuffer"},
		{CmdBindFragmentBuffer, "BindFragmentBuffer"},
		{CmdBindTexture, "BindTexture"},
		{CmdBindSampler, "BindSampler"},
		{CmdBindArgumentTable, "BindArgumentTable"},
		{CmdPushBuffer, "PushBuffer"},
		{CmdDraw, "Draw"},
		{CmdDrawIndexed, "DrawIndexed"},
		{CmdDrawIndexedInstanced, "DrawIndexedInstanced"},
		{CommandType(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.ct.String(); got != tt.want {
			t.Errorf("CommandType(%d).String() = %q, want %q", tt.ct, got, tt.want)
		}
	}
}

func TestCommandTypes(t *testing.T) {
	// Every command struct reports the matching type constant.
	cmds := []Command{
		BeginFrameCommand{},
		EndFrameCommand{},
		BindPipelineCommand{},
		BindVertexBufferCommand{},
		BindIndexBufferCommand{},
		BindFragmentBufferCommand{},
		BindTextureCommand{},
		BindSamplerCommand{},
		BindArgumentTableCommand{},
		PushBufferCommand{},
		DrawCommand{},
		DrawIndexedCommand{},
		DrawIndexedInstancedCommand{},
	}
	seen := make(map[CommandType]bool)
	for _, cmd := range cmds {
		if seen[cmd.Type()] {
			t.Errorf("duplicate command type %v", cmd.Type())
		}
		seen[cmd.Type()] = true
		if cmd.Type().String() == "Unknown" {
			t.Errorf("%T has unnamed type %d", cmd, cmd.Type())
		}
	}
}
