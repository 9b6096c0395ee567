package regiface

// Command is implemented by all types that represent an invokable device
// action. A command value may carry caller-supplied arguments that differ
// from its wire payload shape; InvokingParameters maps the value to the
// parameters actually transmitted. Use [NoParameters] when a command takes
// nothing.
//
// The response type is not part of the interface; it is chosen by the
// caller's type parameter at the invoke call site:
//
//	type Measure struct{ Heated bool }
//
//	func (Measure) CommandID() regiface.ID { return regiface.ID8(0xF0) }
//
//	func (c Measure) InvokingParameters() regiface.Encodable {
//		if c.Heated {
//			return heaterOn{}
//		}
//		return regiface.NoParameters{}
//	}
//
//	resp, err := i2c.InvokeCommand[Reading](bus, 0x44, Measure{Heated: true})
type Command interface {
	// CommandID returns the command's fixed identifier. Pure, constant per
	// type.
	CommandID() ID
	// InvokingParameters returns the wire parameters for this invocation.
	InvokingParameters() Encodable
}
