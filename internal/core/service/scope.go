package service

import "fmt"

// Cache scope keys for claim-list views. A mutation invalidates every
// scope that could have rendered the affected claim.

func tenantQueueScope(tenantID string) string {
	return fmt.Sprintf("claims:list:%s:queue", tenantID)
}

func claimantScope(tenantID, userID string) string {
	return fmt.Sprintf("claims:list:%s:member:%s", tenantID, userID)
}

func agentScope(tenantID, agentID string) string {
	return fmt.Sprintf("claims:list:%s:agent:%s", tenantID, agentID)
}

func staffScope(tenantID, staffID string) string {
	return fmt.Sprintf("claims:list:%s:staff:%s", tenantID, staffID)
}
