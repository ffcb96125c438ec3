// chainwatch is a small operator console for a running ledger node. It polls
// the node's chain, renders it as a table, and can queue a transaction,
// trigger mining, or kick off conflict resolution on demand.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"goledger/blockchain"
)

type chainPayload struct {
	Chain  []blockchain.Block `json:"chain"`
	Length int                `json:"length"`
}

func main() {
	nodeAddr := flag.String("node", "127.0.0.1:5000", "host:port of the node to watch")
	interval := flag.Duration("interval", 2*time.Second, "poll interval when watching")
	once := flag.Bool("once", false, "print the chain once and exit")
	mine := flag.Bool("mine", false, "trigger /mine before printing")
	resolve := flag.Bool("resolve", false, "trigger /nodes/resolve before printing")
	send := flag.String("send", "", "queue a transaction first, as sender:recipient:amount")
	flag.Parse()

	client := &http.Client{Timeout: 30 * time.Second}
	base := "http://" + *nodeAddr

	if *send != "" {
		if err := sendTransaction(client, base, *send); err != nil {
			pterm.Error.Printfln("sending transaction: %v", err)
			return
		}
		pterm.Success.Println("transaction queued")
	}

	if *mine {
		spinner, _ := pterm.DefaultSpinner.Start("mining a block...")
		if err := trigger(client, base+"/mine"); err != nil {
			spinner.Fail(err.Error())
			return
		}
		spinner.Success("block forged")
	}

	if *resolve {
		if err := trigger(client, base+"/nodes/resolve"); err != nil {
			pterm.Error.Printfln("resolving conflicts: %v", err)
			return
		}
		pterm.Success.Println("conflict resolution complete")
	}

	for {
		payload, err := fetchChain(client, base)
		if err != nil {
			pterm.Error.Printfln("fetching chain from %s: %v", *nodeAddr, err)
		} else {
			render(*nodeAddr, payload)
		}

		if *once {
			return
		}
		time.Sleep(*interval)
	}
}

func fetchChain(client *http.Client, base string) (chainPayload, error) {
	var payload chainPayload

	resp, err := client.Get(base + "/chain")
	if err != nil {
		return payload, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return payload, fmt.Errorf("node answered with status %d", resp.StatusCode)
	}
	return payload, json.NewDecoder(resp.Body).Decode(&payload)
}

func trigger(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("node answered with status %d", resp.StatusCode)
	}
	return nil
}

func sendTransaction(client *http.Client, base, spec string) error {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return fmt.Errorf("-send wants sender:recipient:amount, got %q", spec)
	}
	amount, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return fmt.Errorf("amount %q is not an integer", parts[2])
	}

	body, _ := json.Marshal(map[string]interface{}{
		"sender":    parts[0],
		"recipient": parts[1],
		"amount":    amount,
	})
	resp, err := client.Post(base+"/transactions/new", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("node answered with status %d", resp.StatusCode)
	}
	return nil
}

func render(nodeAddr string, payload chainPayload) {
	pterm.DefaultSection.Printfln("%s holds %d blocks", nodeAddr, payload.Length)

	rows := pterm.TableData{{"index", "forged", "txs", "proof", "previous hash"}}
	for _, block := range payload.Chain {
		rows = append(rows, []string{
			strconv.FormatInt(block.Index, 10),
			time.Unix(0, block.Timestamp).Format("15:04:05"),
			strconv.Itoa(len(block.Transactions)),
			strconv.FormatInt(block.Proof, 10),
			shortHash(block.PreviousHash),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	if valid := blockchain.ValidChain(payload.Chain); valid {
		pterm.Success.Println("chain links verify locally")
	} else {
		pterm.Warning.Println("chain fails local validation")
	}
}

func shortHash(hash string) string {
	if hash == "" {
		return "(genesis)"
	}
	if len(hash) > 12 {
		return hash[:12] + "..."
	}
	return hash
}
