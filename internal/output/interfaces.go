package output

import (
	"bytes"
	"net"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Interface describes one bindable network interface.
type Interface struct {
	Name  string
	Index int
	MTU   int
	Flags string
	Addrs []string
}

// ListInterfaces collects the host's network interfaces in table order.
func ListInterfaces() ([]Interface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	list := make([]Interface, 0, len(ifaces))
	for _, ifi := range ifaces {
		entry := Interface{
			Name:  ifi.Name,
			Index: ifi.Index,
			MTU:   ifi.MTU,
			Flags: ifi.Flags.String(),
		}

		addrs, err := ifi.Addrs()
		if err == nil {
			for _, addr := range addrs {
				entry.Addrs = append(entry.Addrs, addr.String())
			}
		}

		list = append(list, entry)
	}

	return list, nil
}

// InterfaceTable renders the interface list as a table.
func InterfaceTable(ifaces []Interface, config Config) []byte {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	configureTable(table)
	table.SetHeader([]string{"Name", "Index", "MTU", "Flags", "Addresses"})

	for _, ifi := range ifaces {
		table.Append([]string{
			ifi.Name,
			strconv.Itoa(ifi.Index),
			strconv.Itoa(ifi.MTU),
			ifi.Flags,
			strings.Join(ifi.Addrs, ", "),
		})
	}

	table.Render()
	return buf.Bytes()
}
