package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

type NodeStatus struct {
	ChainHeight   int64
	UsingPublic   bool
	PublicUnknown bool
}

type NodeService struct {
	ledger Ledger
	agent  Agent
}

func NewNodeService(ledger Ledger, agent Agent) *NodeService {
	return &NodeService{ledger: ledger, agent: agent}
}

// Status reads the chain height from the node and, from the agent, whether
// it is talking to a public node. Only the height is required.
func (ns *NodeService) Status(ctx context.Context) (NodeStatus, error) {
	var status NodeStatus

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h, err := ns.ledger.ChainHeight(gctx)
		if err != nil {
			return fmt.Errorf("chain height: %w", err)
		}
		status.ChainHeight = h
		return nil
	})
	g.Go(func() error {
		public, err := ns.agent.IsUsingPublicNode(gctx)
		if err != nil {
			status.PublicUnknown = true
			return nil
		}
		status.UsingPublic = public
		return nil
	})

	if err := g.Wait(); err != nil {
		return NodeStatus{}, err
	}
	return status, nil
}

func (ns *NodeService) ChainHeight(ctx context.Context) (int64, error) {
	return ns.ledger.ChainHeight(ctx)
}
