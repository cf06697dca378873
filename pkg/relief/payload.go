package relief

import (
	"fmt"

	"github.com/reliefchain/relief-sdk-go/pkg/supra"
)

// FunctionID returns "<moduleAddress>::relief_center_management::<function>".
func FunctionID(moduleAddress string, function Operation) string {
	return fmt.Sprintf("%s::%s::%s", moduleAddress, ModuleName, function)
}

// BuildPayload addresses operation on the relief module with the arguments
// in the order given. Arguments are not validated.
func BuildPayload(moduleAddress string, operation Operation, arguments ...any) supra.EntryFunctionPayload {
	args := make([]any, 0, len(arguments))
	args = append(args, arguments...)
	return supra.EntryFunctionPayload{
		Function:      FunctionID(moduleAddress, operation),
		TypeArguments: []string{},
		Arguments:     args,
	}
}

func BuildCreateManagementPayload(moduleAddress string) supra.EntryFunctionPayload {
	return BuildPayload(moduleAddress, OperationCreateManagement)
}

// BuildAddCenterPayload orders arguments as name, location, city, state.
func BuildAddCenterPayload(moduleAddress string, params AddCenterParams) supra.EntryFunctionPayload {
	return BuildPayload(moduleAddress, OperationAddCenter, params.Name, params.Location, params.City, params.State)
}

// BuildDonatePayload orders arguments as center id, amount.
func BuildDonatePayload(moduleAddress string, params DonateParams) supra.EntryFunctionPayload {
	return BuildPayload(moduleAddress, OperationDonateToCenter, params.CenterID, params.Amount)
}
