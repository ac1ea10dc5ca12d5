package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeRename Type = "rename"
	TypeDelete Type = "delete"
	TypeMark   Type = "mark"
	TypeClear  Type = "clear"
	TypeGoto   Type = "goto"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Name string
}

type RenameArgs struct {
	Target string
	Name   string
}

type DeleteArgs struct {
	Target string
}

// MarkArgs carries an optional failure reason. Reason is nil when the
// command omitted it, which keeps any previously recorded reason.
type MarkArgs struct {
	Target string
	Status string
	Reason *string
}

type ClearArgs struct {
	Target string
	Date   string
}

type GotoArgs struct {
	Date string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Rename *RenameArgs
	Delete *DeleteArgs
	Mark   *MarkArgs
	Clear  *ClearArgs
	Goto   *GotoArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeRename:
		return parseRename(input, args)
	case TypeDelete:
		return parseDelete(input, args)
	case TypeMark:
		return parseMark(input, args)
	case TypeClear:
		return parseClear(input, args)
	case TypeGoto:
		return parseGoto(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a habit name"}
	}
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a habit name"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Name: name}}, nil
}

func parseRename(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "rename requires a target and a new name"}
	}
	name := strings.TrimSpace(strings.Join(args[1:], " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "rename requires a new name"}
	}
	return Command{Type: TypeRename, Raw: raw, Rename: &RenameArgs{Target: args[0], Name: name}}, nil
}

func parseDelete(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "delete requires exactly one target"}
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{Target: args[0]}}, nil
}

func parseMark(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "mark requires a target and a status"}
	}
	status := strings.ToLower(args[1])
	switch status {
	case "done":
		if len(args) > 2 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "mark done takes no reason"}
		}
		return Command{Type: TypeMark, Raw: raw, Mark: &MarkArgs{Target: args[0], Status: status}}, nil
	case "failed":
		var reason *string
		if len(args) > 2 {
			joined := strings.TrimSpace(strings.Join(args[2:], " "))
			reason = &joined
		}
		return Command{Type: TypeMark, Raw: raw, Mark: &MarkArgs{Target: args[0], Status: status, Reason: reason}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown status: %s", status)}
	}
}

func parseClear(raw string, args []string) (Command, error) {
	if len(args) < 1 || len(args) > 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "clear requires a target and an optional date"}
	}
	date := ""
	if len(args) == 2 {
		date = args[1]
	}
	return Command{Type: TypeClear, Raw: raw, Clear: &ClearArgs{Target: args[0], Date: date}}, nil
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goto requires a date"}
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Date: strings.ToLower(args[0])}}, nil
}
