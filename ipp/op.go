/* ipp - IPP protocol core, in pure Go
 *
 * Part of the OpenPrinting project
 *
 * Operation codes, as defined by RFC 8011 section 5.4 and its extensions
 */
package ipp

import (
	"fmt"
	"strconv"
	"strings"
)

// Op is an IPP operation-id, carried in Message.Code for a request.
type Op Code

// Operation codes
const (
	OpPrintJob              Op = 0x0002
	OpPrintURI              Op = 0x0003
	OpValidateJob           Op = 0x0004
	OpCreateJob             Op = 0x0005
	OpSendDocument          Op = 0x0006
	OpSendURI               Op = 0x0007
	OpCancelJob             Op = 0x0008
	OpGetJobAttributes      Op = 0x0009
	OpGetJobs               Op = 0x000a
	OpGetPrinterAttributes  Op = 0x000b
	OpHoldJob               Op = 0x000c
	OpReleaseJob            Op = 0x000d
	OpRestartJob            Op = 0x000e
	OpPausePrinter          Op = 0x0010
	OpResumePrinter         Op = 0x0011
	OpPurgeJobs             Op = 0x0012
	OpSetPrinterAttributes  Op = 0x0013
	OpSetJobAttributes      Op = 0x0014
	OpGetPrinterSupported   Op = 0x0015
	OpCreatePrinterSub      Op = 0x0016
	OpCreateJobSub          Op = 0x0017
	OpGetSubscriptionAttrs  Op = 0x0018
	OpGetSubscriptions      Op = 0x0019
	OpRenewSubscription     Op = 0x001a
	OpCancelSubscription    Op = 0x001b
	OpGetNotifications      Op = 0x001c
	OpGetResourceAttrs      Op = 0x001e
	OpGetResources          Op = 0x0020
	OpGetDocumentAttrs      Op = 0x0025
	OpGetDocuments          Op = 0x0026
	OpDeleteDocument        Op = 0x0027
	OpSetDocumentAttrs      Op = 0x0028
	OpCancelJobs            Op = 0x0029
	OpCancelMyJobs          Op = 0x002a
	OpResubmitJob           Op = 0x002b
	OpClosejob              Op = 0x002c
	OpIdentifyPrinter       Op = 0x002d
	OpValidateDocument      Op = 0x002e
	OpAddDocumentImages     Op = 0x002f
	OpAcknowledgeDocument   Op = 0x0030
	OpAcknowledgeIdentify   Op = 0x0031
	OpAcknowledgeJob        Op = 0x0032
	OpFetchDocument         Op = 0x0033
	OpFetchJob              Op = 0x0034
	OpGetOutputDeviceAttrs  Op = 0x0035
	OpUpdateActiveJobs      Op = 0x0036
	OpDeregisterOutputDev   Op = 0x0037
	OpUpdateDocumentStatus  Op = 0x0038
	OpUpdateJobStatus       Op = 0x0039
	OpUpdateOutputDevAttrs  Op = 0x003a
	OpGetNextDocumentData   Op = 0x003b
	OpAllocatePrinterRes    Op = 0x003c
	OpCreatePrinter         Op = 0x003d
	OpDeletePrinter         Op = 0x003e
	OpGetPrinters           Op = 0x003f
	OpShutdownOnePrinter    Op = 0x0040
	OpStartupOnePrinter     Op = 0x0041
	OpCancelResource        Op = 0x0042
	OpCreateResource        Op = 0x0043
	OpInstallResource       Op = 0x0044
	OpSendResourceData      Op = 0x0045
	OpSetResourceAttrs      Op = 0x0046
	OpCreateResourceSub     Op = 0x0047
	OpCreateSystemSub       Op = 0x0048
	OpDisableAllPrinters    Op = 0x0049
	OpEnableAllPrinters     Op = 0x004a
	OpGetSystemAttrs        Op = 0x004b
	OpGetSystemSupported    Op = 0x004c
	OpPauseAllPrinters      Op = 0x004d
	OpPauseAllPrintersAfter Op = 0x004e
	OpRegisterOutputDev     Op = 0x004f
	OpRestartSystem         Op = 0x0050
	OpResumeAllPrinters     Op = 0x0051
	OpSetSystemAttrs        Op = 0x0052
	OpShutdownAllPrinters   Op = 0x0053
	OpGetPrinterResources   Op = 0x0054
	OpGetUserPrinterAttrs   Op = 0x0055
	OpDisableAllSub         Op = 0x0056
	OpEnableAllSub          Op = 0x0057

	// CUPS extensions, kept alongside the IANA-registered range because
	// real-world printers and drivers use them.
	OpCupsGetDefault         Op = 0x4001
	OpCupsGetPrinters        Op = 0x4002
	OpCupsAddModifyPrinter   Op = 0x4003
	OpCupsDeletePrinter      Op = 0x4004
	OpCupsGetClasses         Op = 0x4005
	OpCupsAddModifyClass     Op = 0x4006
	OpCupsDeleteClass        Op = 0x4007
	OpCupsAcceptJobs         Op = 0x4008
	OpCupsRejectJobs         Op = 0x4009
	OpCupsSetDefault         Op = 0x400a
	OpCupsGetDevices         Op = 0x400b
	OpCupsGetPPDs            Op = 0x400c
	OpCupsMoveJob            Op = 0x400d
	OpCupsAuthenticateJob    Op = 0x400e
	OpCupsGetPPD             Op = 0x400f
	OpCupsGetDocument        Op = 0x4027
	OpCupsCreateLocalPrinter Op = 0x4028
)

// String returns op's RFC name, or a "0xNNNN" token for a value outside
// the known table.
func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("0x%4.4x", uint16(op))
}

var opNames = map[Op]string{
	OpPrintJob:              "Print-Job",
	OpPrintURI:              "Print-URI",
	OpValidateJob:           "Validate-Job",
	OpCreateJob:             "Create-Job",
	OpSendDocument:          "Send-Document",
	OpSendURI:               "Send-URI",
	OpCancelJob:             "Cancel-Job",
	OpGetJobAttributes:      "Get-Job-Attributes",
	OpGetJobs:               "Get-Jobs",
	OpGetPrinterAttributes:  "Get-Printer-Attributes",
	OpHoldJob:               "Hold-Job",
	OpReleaseJob:            "Release-Job",
	OpRestartJob:            "Restart-Job",
	OpPausePrinter:          "Pause-Printer",
	OpResumePrinter:         "Resume-Printer",
	OpPurgeJobs:             "Purge-Jobs",
	OpSetPrinterAttributes:  "Set-Printer-Attributes",
	OpSetJobAttributes:      "Set-Job-Attributes",
	OpGetPrinterSupported:   "Get-Printer-Supported-Values",
	OpCreatePrinterSub:      "Create-Printer-Subscriptions",
	OpCreateJobSub:          "Create-Job-Subscriptions",
	OpGetSubscriptionAttrs:  "Get-Subscription-Attributes",
	OpGetSubscriptions:      "Get-Subscriptions",
	OpRenewSubscription:     "Renew-Subscription",
	OpCancelSubscription:    "Cancel-Subscription",
	OpGetNotifications:      "Get-Notifications",
	OpGetResourceAttrs:      "Get-Resource-Attributes",
	OpGetResources:          "Get-Resources",
	OpGetDocumentAttrs:      "Get-Document-Attributes",
	OpGetDocuments:          "Get-Documents",
	OpDeleteDocument:        "Delete-Document",
	OpSetDocumentAttrs:      "Set-Document-Attributes",
	OpCancelJobs:            "Cancel-Jobs",
	OpCancelMyJobs:          "Cancel-My-Jobs",
	OpResubmitJob:           "Resubmit-Job",
	OpClosejob:              "Close-Job",
	OpIdentifyPrinter:       "Identify-Printer",
	OpValidateDocument:      "Validate-Document",
	OpAddDocumentImages:     "Add-Document-Images",
	OpAcknowledgeDocument:   "Acknowledge-Document",
	OpAcknowledgeIdentify:   "Acknowledge-Identify-Printer",
	OpAcknowledgeJob:        "Acknowledge-Job",
	OpFetchDocument:         "Fetch-Document",
	OpFetchJob:              "Fetch-Job",
	OpGetOutputDeviceAttrs:  "Get-Output-Device-Attributes",
	OpUpdateActiveJobs:      "Update-Active-Jobs",
	OpDeregisterOutputDev:   "Deregister-Output-Device",
	OpUpdateDocumentStatus:  "Update-Document-Status",
	OpUpdateJobStatus:       "Update-Job-Status",
	OpUpdateOutputDevAttrs:  "Update-Output-Device-Attributes",
	OpGetNextDocumentData:   "Get-Next-Document-Data",
	OpAllocatePrinterRes:    "Allocate-Printer-Resources",
	OpCreatePrinter:         "Create-Printer",
	OpDeletePrinter:         "Delete-Printer",
	OpGetPrinters:           "Get-Printers",
	OpShutdownOnePrinter:    "Shutdown-One-Printer",
	OpStartupOnePrinter:     "Startup-One-Printer",
	OpCancelResource:        "Cancel-Resource",
	OpCreateResource:        "Create-Resource",
	OpInstallResource:       "Install-Resource",
	OpSendResourceData:      "Send-Resource-Data",
	OpSetResourceAttrs:      "Set-Resource-Attributes",
	OpCreateResourceSub:     "Create-Resource-Subscriptions",
	OpCreateSystemSub:       "Create-System-Subscriptions",
	OpDisableAllPrinters:    "Disable-All-Printers",
	OpEnableAllPrinters:     "Enable-All-Printers",
	OpGetSystemAttrs:        "Get-System-Attributes",
	OpGetSystemSupported:    "Get-System-Supported-Values",
	OpPauseAllPrinters:      "Pause-All-Printers",
	OpPauseAllPrintersAfter: "Pause-All-Printers-After-Current-Job",
	OpRegisterOutputDev:     "Register-Output-Device",
	OpRestartSystem:         "Restart-System",
	OpResumeAllPrinters:     "Resume-All-Printers",
	OpSetSystemAttrs:        "Set-System-Attributes",
	OpShutdownAllPrinters:   "Shutdown-All-Printers",
	OpGetPrinterResources:   "Get-Printer-Resources",
	OpGetUserPrinterAttrs:   "Get-User-Printer-Attributes",
	OpDisableAllSub:         "Disable-All-Subscriptions",
	OpEnableAllSub:          "Enable-All-Subscriptions",

	OpCupsGetDefault:         "CUPS-Get-Default",
	OpCupsGetPrinters:        "CUPS-Get-Printers",
	OpCupsAddModifyPrinter:   "CUPS-Add-Modify-Printer",
	OpCupsDeletePrinter:      "CUPS-Delete-Printer",
	OpCupsGetClasses:         "CUPS-Get-Classes",
	OpCupsAddModifyClass:     "CUPS-Add-Modify-Class",
	OpCupsDeleteClass:        "CUPS-Delete-Class",
	OpCupsAcceptJobs:         "CUPS-Accept-Jobs",
	OpCupsRejectJobs:         "CUPS-Reject-Jobs",
	OpCupsSetDefault:         "CUPS-Set-Default",
	OpCupsGetDevices:         "CUPS-Get-Devices",
	OpCupsGetPPDs:            "CUPS-Get-PPDs",
	OpCupsMoveJob:            "CUPS-Move-Job",
	OpCupsAuthenticateJob:    "CUPS-Authenticate-Job",
	OpCupsGetPPD:             "CUPS-Get-PPD",
	OpCupsGetDocument:        "CUPS-Get-Document",
	OpCupsCreateLocalPrinter: "CUPS-Create-Local-Printer",
}

var opByName map[string]Op

func init() {
	opByName = make(map[string]Op, len(opNames))
	for op, name := range opNames {
		opByName[strings.ToLower(name)] = op
	}
}

// OpByName is the reverse of Op.String: name ("Print-Job", ...) to Op,
// case-insensitively, also accepting the "0xNNNN" fallback form
// Op.String produces for codes outside the known table.
func OpByName(name string) (op Op, ok bool) {
	if o, found := opByName[strings.ToLower(name)]; found {
		return o, true
	}
	if strings.HasPrefix(name, "0x") || strings.HasPrefix(name, "0X") {
		if v, err := strconv.ParseUint(name[2:], 16, 16); err == nil {
			return Op(v), true
		}
	}
	return 0, false
}
