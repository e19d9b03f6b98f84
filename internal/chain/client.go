package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/gustavo/contract-cli/internal/extrinsics"
	"github.com/gustavo/contract-cli/internal/signer"
)

// CallRequest describes a contract message call to simulate or submit.
type CallRequest struct {
	Origin              common.Address
	Contract            string
	Value               *big.Int
	GasLimit            *extrinsics.Weight
	StorageDepositLimit *big.Int
	Data                []byte
}

// InstantiateRequest describes a contract instantiation.
type InstantiateRequest struct {
	Origin              common.Address
	Value               *big.Int
	GasLimit            *extrinsics.Weight
	StorageDepositLimit *big.Int
	Code                []byte
	CodeHash            common.Hash
	Data                []byte
	Salt                []byte
}

// UploadRequest describes a code upload.
type UploadRequest struct {
	Origin              common.Address
	Code                []byte
	StorageDepositLimit *big.Int
}

// ContractInfo is the on-chain metadata of a deployed contract.
type ContractInfo struct {
	TrieID              string
	CodeHash            common.Hash
	StorageItems        uint32
	StorageItemsDeposit *big.Int
	StorageTotalDeposit *big.Int
	SourceLanguage      string
}

// Client is the narrow contract this CLI requires of the node: simulate
// an extrinsic, submit one for real, and answer info queries. The wire
// protocol behind it is not this package's concern beyond the outcome
// shapes above.
type Client interface {
	DryRunCall(ctx context.Context, req CallRequest) (*extrinsics.DryRunOutcome, error)
	DryRunInstantiate(ctx context.Context, req InstantiateRequest) (*extrinsics.DryRunOutcome, error)
	DryRunUpload(ctx context.Context, req UploadRequest) (*extrinsics.DryRunOutcome, error)
	Submit(ctx context.Context, call string, payload any, s signer.Signer) (common.Hash, error)
	ContractInfo(ctx context.Context, contract string) (*ContractInfo, error)
	Close()
}

type rpcClient struct {
	c *rpc.Client
}

// Dial connects to a node over websocket (or http) JSON-RPC.
func Dial(ctx context.Context, url string) (Client, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect node rpc: %w", err)
	}
	return &rpcClient{c: c}, nil
}

func (r *rpcClient) Close() {
	r.c.Close()
}

type weightResult struct {
	RefTime   uint64 `json:"refTime"`
	ProofSize uint64 `json:"proofSize"`
}

type dryRunResult struct {
	GasConsumed    weightResult  `json:"gasConsumed"`
	GasRequired    weightResult  `json:"gasRequired"`
	StorageDeposit *hexutil.Big  `json:"storageDeposit"`
	DebugMessage   hexutil.Bytes `json:"debugMessage"`
}

func (res dryRunResult) outcome() *extrinsics.DryRunOutcome {
	deposit := new(big.Int)
	if res.StorageDeposit != nil {
		deposit.Set((*big.Int)(res.StorageDeposit))
	}
	return &extrinsics.DryRunOutcome{
		GasConsumed:    extrinsics.Weight{RefTime: res.GasConsumed.RefTime, ProofSize: res.GasConsumed.ProofSize},
		GasRequired:    extrinsics.Weight{RefTime: res.GasRequired.RefTime, ProofSize: res.GasRequired.ProofSize},
		StorageDeposit: deposit,
		DebugMessage:   res.DebugMessage,
	}
}

func (r *rpcClient) DryRunCall(ctx context.Context, req CallRequest) (*extrinsics.DryRunOutcome, error) {
	arg := map[string]any{
		"origin":    req.Origin.Hex(),
		"dest":      req.Contract,
		"value":     (*hexutil.Big)(req.Value),
		"inputData": hexutil.Bytes(req.Data),
	}
	applyLimits(arg, req.GasLimit, req.StorageDepositLimit)

	var res dryRunResult
	if err := r.c.CallContext(ctx, &res, "contracts_call", arg); err != nil {
		return nil, fmt.Errorf("dry-run call: %w", err)
	}
	return res.outcome(), nil
}

func (r *rpcClient) DryRunInstantiate(ctx context.Context, req InstantiateRequest) (*extrinsics.DryRunOutcome, error) {
	arg := map[string]any{
		"origin": req.Origin.Hex(),
		"value":  (*hexutil.Big)(req.Value),
		"data":   hexutil.Bytes(req.Data),
		"salt":   hexutil.Bytes(req.Salt),
	}
	if len(req.Code) > 0 {
		arg["code"] = hexutil.Bytes(req.Code)
	} else {
		arg["codeHash"] = req.CodeHash.Hex()
	}
	applyLimits(arg, req.GasLimit, req.StorageDepositLimit)

	var res dryRunResult
	if err := r.c.CallContext(ctx, &res, "contracts_instantiate", arg); err != nil {
		return nil, fmt.Errorf("dry-run instantiate: %w", err)
	}
	return res.outcome(), nil
}

func (r *rpcClient) DryRunUpload(ctx context.Context, req UploadRequest) (*extrinsics.DryRunOutcome, error) {
	arg := map[string]any{
		"origin": req.Origin.Hex(),
		"code":   hexutil.Bytes(req.Code),
	}
	applyLimits(arg, nil, req.StorageDepositLimit)

	var res dryRunResult
	if err := r.c.CallContext(ctx, &res, "contracts_upload_code", arg); err != nil {
		return nil, fmt.Errorf("dry-run upload: %w", err)
	}
	return res.outcome(), nil
}

// Submit signs the call payload and submits it for on-chain execution.
// Returns the extrinsic hash reported by the node.
func (r *rpcClient) Submit(ctx context.Context, call string, payload any, s signer.Signer) (common.Hash, error) {
	body, err := json.Marshal(map[string]any{"call": call, "params": payload})
	if err != nil {
		return common.Hash{}, fmt.Errorf("encode extrinsic payload: %w", err)
	}
	sig, err := s.Sign(body)
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign extrinsic: %w", err)
	}
	envelope, err := json.Marshal(map[string]any{
		"payload":   hexutil.Bytes(body),
		"signer":    s.Address().Hex(),
		"signature": hexutil.Bytes(sig),
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("encode extrinsic envelope: %w", err)
	}

	var hash common.Hash
	if err := r.c.CallContext(ctx, &hash, "author_submitExtrinsic", hexutil.Bytes(envelope)); err != nil {
		return common.Hash{}, fmt.Errorf("submit extrinsic: %w", err)
	}
	return hash, nil
}

func (r *rpcClient) ContractInfo(ctx context.Context, contract string) (*ContractInfo, error) {
	var res struct {
		TrieID              string       `json:"trieId"`
		CodeHash            common.Hash  `json:"codeHash"`
		StorageItems        uint32       `json:"storageItems"`
		StorageItemsDeposit *hexutil.Big `json:"storageItemsDeposit"`
		StorageTotalDeposit *hexutil.Big `json:"storageTotalDeposit"`
		SourceLanguage      string       `json:"sourceLanguage"`
	}
	if err := r.c.CallContext(ctx, &res, "contracts_contractInfo", contract); err != nil {
		return nil, fmt.Errorf("fetch contract info: %w", err)
	}
	info := &ContractInfo{
		TrieID:              res.TrieID,
		CodeHash:            res.CodeHash,
		StorageItems:        res.StorageItems,
		SourceLanguage:      res.SourceLanguage,
		StorageItemsDeposit: new(big.Int),
		StorageTotalDeposit: new(big.Int),
	}
	if res.StorageItemsDeposit != nil {
		info.StorageItemsDeposit.Set((*big.Int)(res.StorageItemsDeposit))
	}
	if res.StorageTotalDeposit != nil {
		info.StorageTotalDeposit.Set((*big.Int)(res.StorageTotalDeposit))
	}
	return info, nil
}

func applyLimits(arg map[string]any, gasLimit *extrinsics.Weight, depositLimit *big.Int) {
	if gasLimit != nil {
		arg["gasLimit"] = map[string]uint64{
			"refTime":   gasLimit.RefTime,
			"proofSize": gasLimit.ProofSize,
		}
	}
	if depositLimit != nil {
		arg["storageDepositLimit"] = (*hexutil.Big)(depositLimit)
	}
}
