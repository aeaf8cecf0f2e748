package loader

// programSchema constrains JSON and CUE programs: label -> list of instructions
const programSchema = `
#Instruction: {instr: "Take", arg: int & >=0} |
	{instr: "Push" | "Enter", addr: "Arg", arg: int & >=0} |
	{instr: "Push" | "Enter", addr: "Const", arg: int} |
	{instr: "Push" | "Enter", addr: "Label" | "Comb", arg: string} |
	{instr: "Return"} |
	{instr: "PushV", addr: "CurrentFrame"} |
	{instr: "PushV", addr: "IntVal", arg: int} |
	{instr: "Op", arg: "Add" | "Sub" | "Mul" | "Div"}

[string]: [...#Instruction]
`
